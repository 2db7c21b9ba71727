package binlog

// StatusVarKey identifies one entry of a QueryEvent's status-variable
// TLV block.
//
// https://dev.mysql.com/doc/internals/en/query-event.html
type StatusVarKey byte

const (
	SVFlags2                         StatusVarKey = 0
	SVSqlMode                        StatusVarKey = 1
	SVCatalog                        StatusVarKey = 2 // legacy
	SVAutoIncrement                  StatusVarKey = 3
	SVCharset                        StatusVarKey = 4
	SVTimeZone                       StatusVarKey = 5
	SVCatalogNz                      StatusVarKey = 6
	SVLcTimeNames                    StatusVarKey = 7
	SVCharsetDatabase                StatusVarKey = 8
	SVTableMapForUpdate               StatusVarKey = 9
	SVMasterDataWritten               StatusVarKey = 10
	SVInvoker                        StatusVarKey = 11
	SVUpdatedDbNames                 StatusVarKey = 12
	SVMicroseconds                   StatusVarKey = 13
	SVCommitTs                       StatusVarKey = 14
	SVCommitTs2                      StatusVarKey = 15
	SVExplicitDefaultsForTimestamp   StatusVarKey = 16
	SVDdlLoggedWithXid               StatusVarKey = 17
	SVDefaultCollationForUtf8mb4     StatusVarKey = 18
	SVSqlRequirePrimaryKey           StatusVarKey = 19
	SVDefaultTableEncryption         StatusVarKey = 20
)

// StatusVar is one decoded TLV entry: its key and raw value bytes.
type StatusVar struct {
	Key   StatusVarKey
	Value []byte
}

// StatusVarIter iterates a QueryEvent's status-variable block. An unknown
// key byte, or a declared length that runs past the end of the buffer,
// silently ends iteration (trailing garbage after the last recognized
// key is legal per server emission) — it is never reported as an error.
type StatusVarIter struct {
	buf []byte
	pos int
	done bool
}

func newStatusVarIter(buf []byte) *StatusVarIter {
	return &StatusVarIter{buf: buf}
}

// maxUpdatedDbNames mirrors MySQL's field-length ceiling used to bound
// UpdatedDbNames iteration (it never exceeds 256 dbs encoded this way).
const maxUpdatedDbNames = 256

// Next returns the next status var, or ok=false once iteration ends
// (either cleanly, on an unknown key, or on truncation).
func (it *StatusVarIter) Next() (StatusVar, bool) {
	if it.done || it.pos >= len(it.buf) {
		it.done = true
		return StatusVar{}, false
	}
	key := StatusVarKey(it.buf[it.pos])
	rest := it.buf[it.pos+1:]
	n, ok := statusVarLen(key, rest)
	if !ok {
		it.done = true
		return StatusVar{}, false
	}
	if n > len(rest) {
		it.done = true
		return StatusVar{}, false
	}
	v := rest[:n]
	it.pos += 1 + n
	return StatusVar{Key: key, Value: v}, true
}

// statusVarLen implements the per-key length rule table of §4.9. ok is
// false for a key this codec does not recognize, which ends iteration
// without error.
func statusVarLen(key StatusVarKey, rest []byte) (n int, ok bool) {
	switch key {
	case SVFlags2:
		return 4, true
	case SVSqlMode:
		return 8, true
	case SVCatalog:
		return varLenWithTrailingNul(rest)
	case SVAutoIncrement:
		return 4, true
	case SVCharset:
		return 6, true
	case SVTimeZone, SVCatalogNz:
		return varLen(rest)
	case SVLcTimeNames, SVCharsetDatabase, SVDefaultCollationForUtf8mb4:
		return 2, true
	case SVTableMapForUpdate, SVDdlLoggedWithXid:
		return 8, true
	case SVMasterDataWritten:
		return 4, true
	case SVInvoker:
		return invokerLen(rest)
	case SVUpdatedDbNames:
		return updatedDbNamesLen(rest)
	case SVMicroseconds:
		return 3, true
	case SVCommitTs, SVCommitTs2:
		return 0, true
	case SVExplicitDefaultsForTimestamp, SVSqlRequirePrimaryKey, SVDefaultTableEncryption:
		return 1, true
	default:
		return 0, false
	}
}

// varLen reads a u8 length prefix followed by that many bytes: "1+len".
func varLen(rest []byte) (int, bool) {
	if len(rest) < 1 {
		return 0, false
	}
	l := int(rest[0])
	return 1 + l, true
}

// varLenWithTrailingNul is the legacy Catalog shape: "1+len+1" (a
// trailing NUL after the length-prefixed string).
func varLenWithTrailingNul(rest []byte) (int, bool) {
	if len(rest) < 1 {
		return 0, false
	}
	l := int(rest[0])
	return 1 + l + 1, true
}

// invokerLen is "1+user_len+1+host_len".
func invokerLen(rest []byte) (int, bool) {
	if len(rest) < 1 {
		return 0, false
	}
	userLen := int(rest[0])
	hostOff := 1 + userLen
	if hostOff >= len(rest) {
		return 0, false
	}
	hostLen := int(rest[hostOff])
	return hostOff + 1 + hostLen, true
}

// updatedDbNamesLen is "1 + sum(NUL-terminated names)": a count byte
// followed by that many NUL-terminated database names.
func updatedDbNamesLen(rest []byte) (int, bool) {
	if len(rest) < 1 {
		return 0, false
	}
	count := int(rest[0])
	if count > maxUpdatedDbNames {
		return 0, false
	}
	pos := 1
	for i := 0; i < count; i++ {
		if pos >= len(rest) {
			return 0, false
		}
		idx := indexByte(rest[pos:], 0)
		if idx == -1 {
			return 0, false
		}
		pos += idx + 1
	}
	return pos, true
}
