package binlog

// IntvarEvent subtypes (IntvarEvent.Type).
const (
	IntvarLastInsertID uint8 = 0x01
	IntvarInsertID      uint8 = 0x02
)

// IntvarEvent is written before a QUERY_EVENT whose statement uses an
// AUTO_INCREMENT column or LAST_INSERT_ID().
//
// https://dev.mysql.com/doc/internals/en/intvar-event.html
type IntvarEvent struct {
	Type  Raw[uint8]
	Value uint64
}

func decodeIntvarEvent(body []byte) (*IntvarEvent, error) {
	r := newByteReader(body)
	e := &IntvarEvent{}
	e.Type = NewRaw(r.int1())
	e.Value = r.int8()
	return e, r.finish()
}

func (e *IntvarEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.int1(e.Type.Value())
	w.int8(e.Value)
}

// RandEvent is written before a QUERY_EVENT whose statement uses RAND(),
// carrying the seed values the slave must reuse.
//
// https://dev.mysql.com/doc/internals/en/rand-event.html
type RandEvent struct {
	Seed1 uint64
	Seed2 uint64
}

func decodeRandEvent(body []byte) (*RandEvent, error) {
	r := newByteReader(body)
	e := &RandEvent{}
	e.Seed1 = r.int8()
	e.Seed2 = r.int8()
	return e, r.finish()
}

func (e *RandEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.int8(e.Seed1)
	w.int8(e.Seed2)
}

// XidEvent marks an XA transaction commit.
//
// https://dev.mysql.com/doc/internals/en/xid-event.html
type XidEvent struct {
	Xid uint64
}

func decodeXidEvent(body []byte) (*XidEvent, error) {
	r := newByteReader(body)
	e := &XidEvent{}
	e.Xid = r.int8()
	return e, r.finish()
}

func (e *XidEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.int8(e.Xid)
}
