package binlog

// RowsQueryEvent carries the original SQL text that produced a following
// group of row events, for diagnostic/audit tooling. Purely informational:
// replication itself never reads it.
//
// https://dev.mysql.com/doc/internals/en/rows-query-event.html
type RowsQueryEvent struct {
	Query string
}

func decodeRowsQueryEvent(body []byte) (*RowsQueryEvent, error) {
	r := newByteReader(body)
	e := &RowsQueryEvent{}
	r.skip(1) // length byte: informational only, the real length is EOF-bounded
	e.Query = r.stringEOF()
	return e, r.finish()
}

func (e *RowsQueryEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	n := len(e.Query)
	if n > 0xff {
		n = 0xff
	}
	w.int1(byte(n))
	w.string(e.Query)
}
