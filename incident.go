package binlog

// Incident type constants.
const (
	IncidentNone           uint16 = 0
	IncidentLostEvents     uint16 = 1
)

// IncidentEvent notifies a slave that something out of the ordinary
// happened on the master that might leave data in an inconsistent state.
//
// https://dev.mysql.com/doc/internals/en/incident-event.html
type IncidentEvent struct {
	Type    Raw[uint16]
	Message string
}

func decodeIncidentEvent(body []byte) (*IncidentEvent, error) {
	r := newByteReader(body)
	e := &IncidentEvent{}
	e.Type = NewRaw(r.int2())
	size := r.int1()
	e.Message = r.string(int(size))
	return e, r.finish()
}

func (e *IncidentEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.int2(e.Type.Value())
	w.string1(e.Message)
}
