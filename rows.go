package binlog

// RowsEvent is the shared shape of WRITE_ROWS, UPDATE_ROWS, and
// DELETE_ROWS events across all three wire versions (v0/v1/v2). The
// per-row payload that follows the bitmaps is column-type-dependent and
// is kept as an opaque blob: decoding it into typed SQL values needs the
// originating TableMapEvent's column metadata and is out of scope for
// this package (see doc.go).
//
// https://dev.mysql.com/doc/internals/en/rows-event.html
type RowsEvent struct {
	Type       EventType
	TableID    uint64
	Flags      uint16
	// ExtraData holds the v2-only extra-data block, verbatim including
	// its own 2-byte length prefix's payload (but not the prefix
	// itself). Empty for v0/v1.
	ExtraData []byte

	NumColumns uint64
	// ColumnsPresent1 is the first "columns used" bitmap, always present.
	// Its meaning depends on Type: for WRITE it is the after-image column
	// set (the only image a WRITE carries); for DELETE it is the
	// before-image column set; for UPDATE it is the before-image column
	// set, paired with ColumnsPresent2 below. Use BeforeImageColumns and
	// AfterImageColumns rather than reading this field directly unless
	// Type is already known at the call site.
	ColumnsPresent1 bitmap
	// ColumnsPresent2 is the UPDATE-only second bitmap, holding the
	// after-image column set; nil for WRITE/DELETE events.
	ColumnsPresent2 bitmap

	// RowData is every byte following the bitmaps, unparsed.
	RowData []byte
}

// BeforeImageColumns reports the before-image column set, per spec: present
// for UPDATE and DELETE, nil for WRITE (which carries no before-image).
func (e *RowsEvent) BeforeImageColumns() bitmap {
	switch {
	case e.Type.IsUpdateRows(), e.Type.IsDeleteRows():
		return e.ColumnsPresent1
	default:
		return nil
	}
}

// AfterImageColumns reports the after-image column set, per spec: present
// for UPDATE and WRITE, nil for DELETE (which carries no after-image).
func (e *RowsEvent) AfterImageColumns() bitmap {
	switch {
	case e.Type.IsUpdateRows():
		return e.ColumnsPresent2
	case e.Type.IsWriteRows():
		return e.ColumnsPresent1
	default:
		return nil
	}
}

func rowsEventHasExtraData(t EventType) bool {
	return t == WRITE_ROWS_EVENTv2 || t == UPDATE_ROWS_EVENTv2 || t == DELETE_ROWS_EVENTv2
}

func decodeRowsEvent(typ EventType, body []byte, fde *FormatDescriptionEvent) (*RowsEvent, error) {
	r := newByteReader(body)
	e := &RowsEvent{Type: typ}

	postHeaderLen := fde.PostHeaderLength(typ)
	if postHeaderLen == 6 {
		e.TableID = uint64(r.int4())
	} else {
		e.TableID = r.int6()
	}
	e.Flags = r.int2()

	if rowsEventHasExtraData(typ) {
		extraLen := r.int2() // includes these 2 bytes
		if r.err == nil && int(extraLen) >= 2 {
			e.ExtraData = r.bytes(int(extraLen) - 2)
		}
	}

	e.NumColumns = r.intN()
	if r.err != nil {
		return e, r.finish()
	}
	e.ColumnsPresent1 = r.bitmap(int(e.NumColumns))
	if typ.IsUpdateRows() {
		e.ColumnsPresent2 = r.bitmap(int(e.NumColumns))
	}
	e.RowData = r.bytesEOF()
	return e, r.finish()
}

func (e *RowsEvent) encodeBody(w *byteWriter, fde *FormatDescriptionEvent) {
	if fde != nil && fde.PostHeaderLength(e.Type) == 6 {
		w.int4(uint32(e.TableID))
	} else {
		w.int6(e.TableID)
	}
	w.int2(e.Flags)
	if rowsEventHasExtraData(e.Type) {
		w.int2(uint16(len(e.ExtraData) + 2))
		w.bytes(e.ExtraData)
	}
	w.intN(e.NumColumns)
	w.bytes(truncateBitmap(e.ColumnsPresent1, int(e.NumColumns)))
	if e.Type.IsUpdateRows() {
		w.bytes(truncateBitmap(e.ColumnsPresent2, int(e.NumColumns)))
	}
	w.bytes(e.RowData)
}

// truncateBitmap re-packs bm to exactly ceil(numCol/8) bytes, since a
// decoded bitmap field is already that length but a caller constructing
// a RowsEvent by hand may hand in a shorter or longer slice.
func truncateBitmap(bm bitmap, numCol int) []byte {
	want := bitmapByteLen(numCol)
	out := make([]byte, want)
	copy(out, bm)
	return out
}
