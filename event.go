package binlog

import "github.com/pkg/errors"

// Event is a single decoded binlog event: its fixed header, its body with
// any checksum trailer already split off, and the checksum policy/value
// that applied to it. Events are immutable once decoded.
type Event struct {
	Header      EventHeader
	Body        []byte
	ChecksumAlg ChecksumAlg
	Checksum    uint32 // meaningful only when ChecksumAlg != ChecksumOff
}

// Payload is implemented by every decoded event-body type. encodeBody writes
// only the body (no header, no checksum trailer) — callers that need a
// full on-wire event use a stream/file writer, which adds those.
type Payload interface {
	encodeBody(w *byteWriter, fde *FormatDescriptionEvent)
}

// OpaqueEvent preserves the body of an event kind this package does not
// interpret (GTID, Anonymous GTID, Previous GTIDs, XA Prepare, View
// Change, Transaction Context, Partial Update Rows, and anything this
// version of the library does not recognize) so that round-trip still
// works even though the content itself is opaque.
type OpaqueEvent struct {
	Type EventType
	Raw  []byte
}

func (e OpaqueEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	w.bytes(e.Raw)
}

// ReadPayload lazily decodes the event body into its typed payload. fde
// is the active FormatDescriptionEvent for the stream (needed to resolve
// post-header lengths, which decide query-event padding and the table-id
// width of rows and table-map events; the rows-event V1/V2 shape follows
// from the event type itself); pass the
// reader's current FDE, or nil to use built-in defaults only.
func (e Event) ReadPayload(fde *FormatDescriptionEvent) (Payload, error) {
	if fde == nil {
		d := defaultFDE(4)
		fde = &d
	}
	typ := e.Header.EventType.Value()
	p, err := e.decodePayload(typ, fde)
	return p, errDecodeEvent(typ, err)
}

func (e Event) decodePayload(typ EventType, fde *FormatDescriptionEvent) (Payload, error) {
	switch typ {
	case FORMAT_DESCRIPTION_EVENT:
		f, err := decodeFDE(e.Body)
		return &f, err
	case QUERY_EVENT:
		return decodeQueryEvent(e.Body, fde)
	case ROTATE_EVENT:
		return decodeRotateEvent(e.Body)
	case INTVAR_EVENT:
		return decodeIntvarEvent(e.Body)
	case RAND_EVENT:
		return decodeRandEvent(e.Body)
	case XID_EVENT:
		return decodeXidEvent(e.Body)
	case USER_VAR_EVENT:
		return decodeUserVarEvent(e.Body)
	case INCIDENT_EVENT:
		return decodeIncidentEvent(e.Body)
	case BEGIN_LOAD_QUERY_EVENT:
		return decodeBeginLoadQueryEvent(e.Body)
	case EXECUTE_LOAD_QUERY_EVENT:
		return decodeExecuteLoadQueryEvent(e.Body, fde)
	case TABLE_MAP_EVENT:
		return decodeTableMapEvent(e.Body, fde)
	case ROWS_QUERY_EVENT:
		return decodeRowsQueryEvent(e.Body)
	case WRITE_ROWS_EVENTv0, WRITE_ROWS_EVENTv1, WRITE_ROWS_EVENTv2,
		UPDATE_ROWS_EVENTv0, UPDATE_ROWS_EVENTv1, UPDATE_ROWS_EVENTv2,
		DELETE_ROWS_EVENTv0, DELETE_ROWS_EVENTv1, DELETE_ROWS_EVENTv2:
		return decodeRowsEvent(typ, e.Body, fde)
	default:
		// STOP/HEARTBEAT/IGNORABLE/UNKNOWN, GTID, anonymous GTID, previous
		// GTIDs, XA prepare, view change, transaction context, partial
		// update rows, and any event type introduced after this library
		// was written: preserved opaquely, per §9's sum-type design note.
		return OpaqueEvent{Type: typ, Raw: append([]byte(nil), e.Body...)}, nil
	}
}

// EncodePayload writes p's body encoding (no header, no checksum) using
// fde (or the default v4 FDE when nil) to resolve FDE-dependent layout:
// the table-id width of rows and table-map events. The rows event V1/V2
// shape follows from the payload's own Type, and query-shaped events are
// written without post-header padding whatever fde declares.
func EncodePayload(p Payload, fde *FormatDescriptionEvent) []byte {
	if fde == nil {
		d := defaultFDE(4)
		fde = &d
	}
	w := newByteWriter()
	p.encodeBody(w, fde)
	return w.Bytes()
}

// errDecodeEvent wraps a decode error with the event type for context.
func errDecodeEvent(typ EventType, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "binlog: decode %s event", typ)
}
