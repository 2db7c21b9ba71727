package binlog

import "bytes"

// defaultPostHeaderLengths are the built-in per-event-type post-header
// lengths used when the FDE's own table has no entry (or none was ever
// installed), keyed by EventType. UNKNOWN_EVENT has no post-header.
var defaultPostHeaderLengths = map[EventType]int{
	START_EVENT_V3:            56,
	QUERY_EVENT:               13,
	STOP_EVENT:                0,
	ROTATE_EVENT:              8,
	INTVAR_EVENT:              0,
	LOAD_EVENT:                18,
	SLAVE_EVENT:               0,
	CREATE_FILE_EVENT:         4,
	APPEND_BLOCK_EVENT:        4,
	EXEC_LOAD_EVENT:           4,
	DELETE_FILE_EVENT:         4,
	NEW_LOAD_EVENT:            18,
	RAND_EVENT:                0,
	USER_VAR_EVENT:            0,
	FORMAT_DESCRIPTION_EVENT:  84,
	XID_EVENT:                 0,
	BEGIN_LOAD_QUERY_EVENT:    4,
	EXECUTE_LOAD_QUERY_EVENT:  26,
	TABLE_MAP_EVENT:           8,
	WRITE_ROWS_EVENTv0:        10,
	UPDATE_ROWS_EVENTv0:       10,
	DELETE_ROWS_EVENTv0:       10,
	WRITE_ROWS_EVENTv1:        8,
	UPDATE_ROWS_EVENTv1:       8,
	DELETE_ROWS_EVENTv1:       8,
	INCIDENT_EVENT:            2,
	HEARTBEAT_EVENT:           0,
	IGNORABLE_EVENT:           0,
	ROWS_QUERY_EVENT:          0,
	WRITE_ROWS_EVENTv2:        10,
	UPDATE_ROWS_EVENTv2:       10,
	DELETE_ROWS_EVENTv2:       10,
	GTID_EVENT:                42,
	ANONYMOUS_GTID_EVENT:      42,
	PREVIOUS_GTIDS_EVENT:      0,
}

// FormatDescriptionEvent is the first event of every v4 binlog stream. It
// carries the binlog version, the originating server's version string,
// and the post-header-length table that parameterizes every subsequent
// event's layout in this stream.
//
// https://dev.mysql.com/doc/internals/en/format-description-event.html
type FormatDescriptionEvent struct {
	BinlogVersion          uint16
	ServerVersion          string // truncated at the first NUL
	CreateTimestamp        uint32
	HeaderLength           uint8 // stored as decoded, not checked; encode always writes 19
	PostHeaderLengths      []byte
	footer                 EventFooter
}

// defaultFDE synthesizes the FDE installed before any real one has been
// seen on a stream, per §3 "Stream State": reports no checksum.
func defaultFDE(binlogVersion uint16) FormatDescriptionEvent {
	return FormatDescriptionEvent{
		BinlogVersion: binlogVersion,
		HeaderLength:  eventHeaderLen,
		footer:        EventFooter{Alg: ChecksumOff},
	}
}

// PostHeaderLength returns the post-header length this FDE declares for
// typ, falling back to the built-in default when the FDE's table has no
// entry at index typ-1. UNKNOWN_EVENT always returns 0.
func (e *FormatDescriptionEvent) PostHeaderLength(typ EventType) int {
	if typ == UNKNOWN_EVENT {
		return 0
	}
	idx := int(typ) - 1
	if idx >= 0 && idx < len(e.PostHeaderLengths) {
		return int(e.PostHeaderLengths[idx])
	}
	return defaultPostHeaderLengths[typ]
}

// Footer returns the checksum policy this FDE established.
func (e *FormatDescriptionEvent) Footer() EventFooter { return e.footer }

const fdeServerVersionLen = 50

// fdeFixedLen is BinlogVersion(2) + ServerVersion(50) + CreateTimestamp(4)
// + HeaderLength(1).
const fdeFixedLen = 2 + fdeServerVersionLen + 4 + 1

// decodeFDE decodes the body of a FORMAT_DESCRIPTION_EVENT. body is the
// event payload with any checksum trailer already removed by the stream
// layer — the trailer's presence was itself decided from this same FDE's
// raw bytes via decodeEventFooter before the trailer was split off. What
// remains ambiguous at this layer is only whether the last byte of body
// is the checksum-algorithm descriptor versus real post-header-length
// data, which this resolves from the server version instead.
func decodeFDE(body []byte) (FormatDescriptionEvent, error) {
	r := newByteReader(body)
	e := FormatDescriptionEvent{}
	e.BinlogVersion = r.int2()
	sv := r.string(fdeServerVersionLen)
	if i := bytes.IndexByte([]byte(sv), 0); i != -1 {
		sv = sv[:i]
	}
	e.ServerVersion = sv
	e.CreateTimestamp = r.int4()
	e.HeaderLength = r.int1()
	rest := r.bytesEOF()
	if r.err != nil {
		return e, r.finish()
	}

	alg := ChecksumOff
	if versionSupportsChecksum(body) && len(rest) >= 1 {
		alg = ChecksumAlg(rest[len(rest)-1])
		rest = rest[:len(rest)-1]
	}
	e.PostHeaderLengths = rest
	e.footer = EventFooter{Alg: alg}
	return e, r.finish()
}

func (e *FormatDescriptionEvent) encodeBody(w *byteWriter, _ *FormatDescriptionEvent) {
	e.encode(w)
}

func (e *FormatDescriptionEvent) encode(w *byteWriter) {
	w.int2(e.BinlogVersion)
	sv := e.ServerVersion
	if len(sv) > fdeServerVersionLen {
		sv = sv[:fdeServerVersionLen]
	}
	w.string(sv)
	for i := len(sv); i < fdeServerVersionLen; i++ {
		w.int1(0)
	}
	w.int4(e.CreateTimestamp)
	w.int1(eventHeaderLen)
	w.bytes(e.PostHeaderLengths)
	if !parseServerVersion(e.ServerVersion).lt(checksumMinVersion) {
		w.int1(byte(e.footer.Alg))
	}
}
