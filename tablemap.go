package binlog

// Table map flags.
const (
	TMNoFlags       uint16 = 0
	TMBitLenExactF  uint16 = 0x0001
)

// TableMapEvent precedes a group of row events and identifies the table
// (and its column layout) those row events reference by TableID.
//
// https://dev.mysql.com/doc/internals/en/table-map-event.html
type TableMapEvent struct {
	TableID    uint64
	Flags      uint16
	SchemaName string
	TableName  string
	NumColumns uint64
	// ColumnTypes holds one raw column-type byte per column.
	ColumnTypes []byte
	// ColumnMetadata holds the per-column metadata bytes, in column
	// order, whose per-column width depends on ColumnTypes — it is kept
	// as one packed blob; ColumnMetadataLengths gives the per-column widths
	// to split it by.
	ColumnMetadata []byte
	// NullBitmap marks which columns may hold a NULL value, one bit per
	// column in declaration order.
	NullBitmap bitmap
	// OptionalMetadata is the post-5.7.7 optional-metadata fields block,
	// preserved opaquely: this codec does not decode its internal TLV
	// structure (it is unspecified in the scope of this package).
	OptionalMetadata []byte
}

// MySQL column-type byte values relevant to columnMetaWidth. Other
// column types either carry no metadata or are out of scope here.
const (
	colTypeDecimal    byte = 0x00
	colTypeFloat      byte = 0x04
	colTypeDouble     byte = 0x05
	colTypeVarchar    byte = 0x0f
	colTypeNewDecimal byte = 0xf6
	colTypeEnum       byte = 0xf7
	colTypeSet        byte = 0xf8
	colTypeBlob       byte = 0xfc
	colTypeVarString  byte = 0xfd
	colTypeString     byte = 0xfe
)

// columnMetaWidth reports how many metadata bytes a column of type typ
// occupies in TableMapEvent.ColumnMetadata, per §4.8's metadata length
// table.
func columnMetaWidth(typ byte) int {
	switch typ {
	case colTypeString, colTypeVarString, colTypeVarchar, colTypeDecimal, colTypeNewDecimal, colTypeSet, colTypeEnum:
		return 2
	case colTypeBlob, colTypeDouble, colTypeFloat:
		return 1
	default:
		return 0
	}
}

// ColumnMetadataLengths returns, in column order, how many bytes of
// ColumnMetadata each column occupies according to its type; callers
// split ColumnMetadata themselves by walking these widths.
func (e *TableMapEvent) ColumnMetadataLengths() []int {
	out := make([]int, len(e.ColumnTypes))
	for i, t := range e.ColumnTypes {
		out[i] = columnMetaWidth(t)
	}
	return out
}

func decodeTableMapEvent(body []byte, fde *FormatDescriptionEvent) (*TableMapEvent, error) {
	r := newByteReader(body)
	e := &TableMapEvent{}
	if fde.PostHeaderLength(TABLE_MAP_EVENT) == 6 {
		e.TableID = uint64(r.int4())
	} else {
		e.TableID = r.int6()
	}
	e.Flags = r.int2()
	schemaLen := r.int1()
	e.SchemaName = r.string(int(schemaLen))
	r.skip(1) // NUL terminator
	tableLen := r.int1()
	e.TableName = r.string(int(tableLen))
	r.skip(1) // NUL terminator
	e.NumColumns = r.intN()
	if r.err != nil {
		return e, r.finish()
	}
	e.ColumnTypes = r.bytes(int(e.NumColumns))
	metaBlockLen := r.intN()
	e.ColumnMetadata = r.bytes(int(metaBlockLen))
	e.NullBitmap = r.bitmap(int(e.NumColumns))
	e.OptionalMetadata = r.bytesEOF()
	return e, r.finish()
}

func (e *TableMapEvent) encodeBody(w *byteWriter, fde *FormatDescriptionEvent) {
	if fde != nil && fde.PostHeaderLength(TABLE_MAP_EVENT) == 6 {
		w.int4(uint32(e.TableID))
	} else {
		w.int6(e.TableID)
	}
	w.int2(e.Flags)
	w.string1(e.SchemaName)
	w.int1(0)
	w.string1(e.TableName)
	w.int1(0)
	w.intN(e.NumColumns)
	w.bytes(e.ColumnTypes)
	w.intN(uint64(len(e.ColumnMetadata)))
	w.bytes(e.ColumnMetadata)
	w.bytes(writeBitmap(boolsFromBitmap(e.NullBitmap, int(e.NumColumns))))
	w.bytes(e.OptionalMetadata)
}

// boolsFromBitmap expands a packed bitmap back into one bool per column,
// the inverse of writeBitmap, so a decoded TableMapEvent can be
// re-encoded byte-for-byte without retaining the original packed form
// as a separate field.
func boolsFromBitmap(bm bitmap, numCol int) []bool {
	out := make([]bool, numCol)
	for i := range out {
		out[i] = bm.isSet(i)
	}
	return out
}
