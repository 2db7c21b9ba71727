package binlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteReaderFixedWidth(t *testing.T) {
	r := newByteReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	assert.Equal(t, byte(0x01), r.int1())
	assert.Equal(t, uint16(0x0302), r.int2())
	r2 := newByteReader([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, uint32(0x030201), r2.int3())
	r3 := newByteReader([]byte{0x01, 0x02, 0x03, 0x04})
	assert.Equal(t, uint32(0x04030201), r3.int4())
	r4 := newByteReader([]byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, uint64(0x060504030201), r4.int6())
	r5 := newByteReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	assert.Equal(t, uint64(0x0807060504030201), r5.int8())
}

func TestByteReaderIntNLenenc(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
	}{
		{[]byte{0x05}, 5},
		{[]byte{0xfa}, 0xfa},
		{[]byte{0xfc, 0x01, 0x02}, 0x0201},
		{[]byte{0xfd, 0x01, 0x02, 0x03}, 0x030201},
		{[]byte{0xfe, 1, 0, 0, 0, 0, 0, 0, 0}, 1},
	}
	for _, c := range cases {
		r := newByteReader(c.in)
		assert.Equal(t, c.want, r.intN())
		require.NoError(t, r.finish())
	}
}

func TestByteWriterIntNRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 250, 251, 65535, 65536, 1 << 24, 1 << 40} {
		w := newByteWriter()
		w.intN(v)
		r := newByteReader(w.Bytes())
		assert.Equal(t, v, r.intN())
		require.NoError(t, r.finish())
	}
}

func TestByteReaderStringNull(t *testing.T) {
	r := newByteReader([]byte("hello\x00world\x00"))
	assert.Equal(t, "hello", r.stringNull())
	assert.Equal(t, "world", r.stringNull())
	require.NoError(t, r.finish())
}

func TestByteReaderFinishReportsTrailingBytes(t *testing.T) {
	r := newByteReader([]byte{1, 2, 3})
	r.int1()
	err := r.finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

func TestByteReaderTruncation(t *testing.T) {
	r := newByteReader([]byte{1, 2})
	r.int4()
	err := r.finish()
	require.Error(t, err)
	assert.True(t, IsTruncated(err))
}

func TestBitmapRoundTrip(t *testing.T) {
	set := []bool{true, false, true, true, false, false, false, false, true}
	packed := writeBitmap(set)
	assert.Equal(t, bitmapByteLen(len(set)), len(packed))
	bm := bitmap(packed)
	for i, want := range set {
		assert.Equal(t, want, bm.isSet(i), "col %d", i)
	}
}
