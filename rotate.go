package binlog

// RotateEvent is written when mysqld switches to a new binary log file,
// either because of FLUSH LOGS or because the current file hit
// max_binlog_size.
//
// https://dev.mysql.com/doc/internals/en/rotate-event.html
type RotateEvent struct {
	Position   uint64
	NextBinlog string
}

func decodeRotateEvent(body []byte) (*RotateEvent, error) {
	r := newByteReader(body)
	e := &RotateEvent{}
	e.Position = r.int8()
	e.NextBinlog = r.stringEOF()
	return e, r.finish()
}

func (e *RotateEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.int8(e.Position)
	w.string(e.NextBinlog)
}
