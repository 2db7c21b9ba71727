package binlog

// QueryEvent is written for an updating SQL statement under
// statement-based replication.
//
// https://dev.mysql.com/doc/internals/en/query-event.html
type QueryEvent struct {
	ThreadID      uint32
	ExecutionTime uint32
	ErrorCode     uint16
	StatusVars    []byte
	Schema        string
	Query         string

	schemaLen     byte   // stashed between decodeQueryEventFixed and decodeQueryEventVariable
	statusVarsLen uint16 // stashed between decodeQueryEventFixed and decodeQueryEventStatusVars
}

// StatusVarsIter returns an iterator over the event's status-variable TLV block.
func (e *QueryEvent) StatusVarsIter() *StatusVarIter {
	return newStatusVarIter(e.StatusVars)
}

func decodeQueryEvent(body []byte, fde *FormatDescriptionEvent) (*QueryEvent, error) {
	r := newByteReader(body)
	e := &QueryEvent{}
	decodeQueryEventFixed(r, e)
	skipQueryPostHeaderPadding(r, fde.PostHeaderLength(QUERY_EVENT), 13)
	decodeQueryEventStatusVars(r, e)
	decodeQueryEventVariable(r, e)
	return e, r.finish()
}

// decodeQueryEventFixed reads the 13-byte fixed prefix common to
// QueryEvent and ExecuteLoadQueryEvent's query-shaped tail: thread_id,
// execution_time, schema_len, error_code, status_vars_len. It stops
// short of reading status_vars itself, since a caller with its own added
// fixed fields (ExecuteLoadQueryEvent's file_id/start_pos/end_pos/
// dup_handling) or post-header padding must read those first — status
// vars only begins once the whole post-header has been consumed.
func decodeQueryEventFixed(r *byteReader, e *QueryEvent) {
	e.ThreadID = r.int4()
	e.ExecutionTime = r.int4()
	schemaLen := r.int1()
	if r.err != nil {
		return
	}
	e.ErrorCode = r.int2()
	statusVarsLen := r.int2()
	if r.err != nil {
		return
	}
	e.schemaLen = schemaLen
	e.statusVarsLen = statusVarsLen
}

// decodeQueryEventStatusVars reads the status_vars block, once the
// post-header (including any padding) has been fully consumed.
func decodeQueryEventStatusVars(r *byteReader, e *QueryEvent) {
	e.StatusVars = r.bytes(int(e.statusVarsLen))
}

func decodeQueryEventVariable(r *byteReader, e *QueryEvent) {
	e.Schema = r.string(int(e.schemaLen))
	r.skip(1) // NUL terminator after schema
	e.Query = r.stringEOF()
}

// skipQueryPostHeaderPadding skips the bytes between a query-shaped
// event's known fixed fields and its status_vars block: any declared
// post-header length beyond known is padding this codec does not
// interpret, per §4.8. known is 13 for QUERY_EVENT and 26 for
// EXECUTE_LOAD_QUERY_EVENT (13 plus its own added fixed fields).
func skipQueryPostHeaderPadding(r *byteReader, declared, known int) {
	if declared > known {
		r.skip(declared - known)
	}
}

func (e *QueryEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	e.encodeFixedHeader(w)
	e.encodeStatusVars(w)
	e.encodeVariable(w)
}

// encodeFixedHeader writes the 13-byte fixed prefix, stopping short of
// status_vars itself — the mirror of decodeQueryEventFixed.
func (e *QueryEvent) encodeFixedHeader(w *byteWriter) {
	w.int4(e.ThreadID)
	w.int4(e.ExecutionTime)
	schema := e.Schema
	if len(schema) > 0xff {
		schema = schema[:0xff]
	}
	w.int1(byte(len(schema)))
	w.int2(e.ErrorCode)
	statusVars := e.StatusVars
	if len(statusVars) > 0xffff {
		statusVars = statusVars[:0xffff]
	}
	w.int2(uint16(len(statusVars)))
}

// encodeStatusVars writes the status_vars block, the mirror of
// decodeQueryEventStatusVars.
func (e *QueryEvent) encodeStatusVars(w *byteWriter) {
	statusVars := e.StatusVars
	if len(statusVars) > 0xffff {
		statusVars = statusVars[:0xffff]
	}
	w.bytes(statusVars)
}

func (e *QueryEvent) encodeVariable(w *byteWriter) {
	schema := e.Schema
	if len(schema) > 0xff {
		schema = schema[:0xff]
	}
	w.string(schema)
	w.int1(0)
	w.string(e.Query)
}
