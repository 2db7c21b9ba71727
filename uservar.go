package binlog

// UserVarEvent is written before a QUERY_EVENT whose statement uses a
// user variable, carrying the value to substitute.
//
// https://dev.mysql.com/doc/internals/en/user-var-event.html
type UserVarEvent struct {
	Name     string
	IsNull   bool
	Type     uint8
	Charset  uint32
	Value    []byte
	HasFlags bool // whether the source event carried the trailing flags byte
	Flags    uint8
}

func decodeUserVarEvent(body []byte) (*UserVarEvent, error) {
	r := newByteReader(body)
	e := &UserVarEvent{}
	nameLen := r.int4()
	if r.err != nil {
		return e, r.finish()
	}
	e.Name = r.string(int(nameLen))
	e.IsNull = r.int1() == 1
	if r.err != nil {
		return e, r.finish()
	}
	if !e.IsNull {
		e.Type = r.int1()
		e.Charset = r.int4()
		valueLen := r.int4()
		if r.err != nil {
			return e, r.finish()
		}
		e.Value = r.bytes(int(valueLen))
		if r.remaining() > 0 {
			e.HasFlags = true
			e.Flags = r.int1()
		}
	}
	return e, r.finish()
}

// encodeBody always writes the trailing flags byte for a non-null value,
// even if the decoded source event omitted it (legacy servers predating
// the flags byte). This is a deliberate, documented normalization: the
// encoded body may be exactly one byte longer than the original on-wire
// body in that one case. See §4.8/§9.
func (e *UserVarEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.int4(uint32(len(e.Name)))
	w.string(e.Name)
	if e.IsNull {
		w.int1(1)
		return
	}
	w.int1(0)
	w.int1(e.Type)
	w.int4(e.Charset)
	w.int4(uint32(len(e.Value)))
	w.bytes(e.Value)
	w.int1(e.Flags)
}
