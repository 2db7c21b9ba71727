package binlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRowsBody(t *testing.T, typ EventType, numCols int, before, after []bool, rowData []byte) []byte {
	t.Helper()
	w := newByteWriter()
	w.int6(42) // table id, default post-header length (10) takes the u48 branch
	w.int2(0)  // flags
	if rowsEventHasExtraData(typ) {
		w.int2(2) // extra-data length, no payload
	}
	w.intN(uint64(numCols))
	w.bytes(writeBitmap(before))
	if typ.IsUpdateRows() {
		w.bytes(writeBitmap(after))
	}
	w.bytes(rowData)
	return w.Bytes()
}

func TestRowsEventWriteHasOnlyAfterImage(t *testing.T) {
	fde := defaultFDE(4)
	body := buildRowsBody(t, WRITE_ROWS_EVENTv2, 3, []bool{true, true, true}, nil, []byte{1, 2, 3})

	got, err := decodeRowsEvent(WRITE_ROWS_EVENTv2, body, &fde)
	require.NoError(t, err)
	assert.Nil(t, got.BeforeImageColumns())
	require.NotNil(t, got.AfterImageColumns())
	assert.True(t, got.AfterImageColumns().isSet(0))
}

func TestRowsEventDeleteHasOnlyBeforeImage(t *testing.T) {
	fde := defaultFDE(4)
	body := buildRowsBody(t, DELETE_ROWS_EVENTv2, 2, []bool{true, false}, nil, []byte{9})

	got, err := decodeRowsEvent(DELETE_ROWS_EVENTv2, body, &fde)
	require.NoError(t, err)
	require.NotNil(t, got.BeforeImageColumns())
	assert.True(t, got.BeforeImageColumns().isSet(0))
	assert.False(t, got.BeforeImageColumns().isSet(1))
	assert.Nil(t, got.AfterImageColumns())
}

func TestRowsEventUpdateHasBothImages(t *testing.T) {
	fde := defaultFDE(4)
	body := buildRowsBody(t, UPDATE_ROWS_EVENTv2, 2, []bool{true, false}, []bool{false, true}, []byte{7, 7})

	got, err := decodeRowsEvent(UPDATE_ROWS_EVENTv2, body, &fde)
	require.NoError(t, err)
	require.NotNil(t, got.BeforeImageColumns())
	require.NotNil(t, got.AfterImageColumns())
	assert.True(t, got.BeforeImageColumns().isSet(0))
	assert.False(t, got.BeforeImageColumns().isSet(1))
	assert.False(t, got.AfterImageColumns().isSet(0))
	assert.True(t, got.AfterImageColumns().isSet(1))
}

func TestRowsEventV2ExtraDataRoundTrip(t *testing.T) {
	e := &RowsEvent{
		Type:            WRITE_ROWS_EVENTv2,
		TableID:         1,
		NumColumns:      1,
		ColumnsPresent1: bitmap(writeBitmap([]bool{true})),
		ExtraData:       []byte{0xab, 0xcd},
		RowData:         []byte{0x01},
	}
	fde := defaultFDE(4)
	body := EncodePayload(e, &fde)

	got, err := decodeRowsEvent(WRITE_ROWS_EVENTv2, body, &fde)
	require.NoError(t, err)
	assert.Equal(t, e.ExtraData, got.ExtraData)
	assert.Equal(t, e.RowData, got.RowData)
}

func TestRowsEventV1HasNoExtraData(t *testing.T) {
	e := &RowsEvent{
		Type:            WRITE_ROWS_EVENTv1,
		TableID:         1,
		NumColumns:      1,
		ColumnsPresent1: bitmap(writeBitmap([]bool{true})),
		RowData:         []byte{0x01},
	}
	fde := defaultFDE(4)
	body := EncodePayload(e, &fde)

	got, err := decodeRowsEvent(WRITE_ROWS_EVENTv1, body, &fde)
	require.NoError(t, err)
	assert.Empty(t, got.ExtraData)
	assert.True(t, got.AfterImageColumns().isSet(0))
}

func TestRowsEventTableIDWidthFromPostHeaderLength(t *testing.T) {
	fde := defaultFDE(4)
	fde.PostHeaderLengths = make([]byte, int(WRITE_ROWS_EVENTv2))
	fde.PostHeaderLengths[int(WRITE_ROWS_EVENTv2)-1] = 6

	e := &RowsEvent{
		Type:            WRITE_ROWS_EVENTv2,
		TableID:         0x99,
		NumColumns:      1,
		ColumnsPresent1: bitmap(writeBitmap([]bool{true})),
	}
	body := EncodePayload(e, &fde)
	got, err := decodeRowsEvent(WRITE_ROWS_EVENTv2, body, &fde)
	require.NoError(t, err)
	assert.Equal(t, e.TableID, got.TableID)
}
