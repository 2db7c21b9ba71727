package binlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildStatusVars(t *testing.T, entries ...StatusVar) []byte {
	t.Helper()
	w := newByteWriter()
	for _, e := range entries {
		w.int1(byte(e.Key))
		w.bytes(e.Value)
	}
	return w.Bytes()
}

func TestStatusVarIterKnownKeysInOrder(t *testing.T) {
	buf := buildStatusVars(t,
		StatusVar{Key: SVFlags2, Value: []byte{1, 2, 3, 4}},
		StatusVar{Key: SVSqlMode, Value: make([]byte, 8)},
		StatusVar{Key: SVCharset, Value: make([]byte, 6)},
		StatusVar{Key: SVExplicitDefaultsForTimestamp, Value: []byte{1}},
	)
	it := newStatusVarIter(buf)

	sv, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVFlags2, sv.Key)
	assert.Equal(t, []byte{1, 2, 3, 4}, sv.Value)

	sv, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVSqlMode, sv.Key)
	assert.Len(t, sv.Value, 8)

	sv, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVCharset, sv.Key)
	assert.Len(t, sv.Value, 6)

	sv, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVExplicitDefaultsForTimestamp, sv.Key)
	assert.Equal(t, []byte{1}, sv.Value)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestStatusVarIterVariableWidthKeys(t *testing.T) {
	w := newByteWriter()
	w.int1(byte(SVCatalogNz))
	w.int1(5)
	w.string("mydb1")
	w.int1(byte(SVInvoker))
	w.int1(4)
	w.string("user")
	w.int1(4)
	w.string("host")
	it := newStatusVarIter(w.Bytes())

	sv, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVCatalogNz, sv.Key)
	assert.Equal(t, []byte{5, 'm', 'y', 'd', 'b', '1'}, sv.Value)

	sv, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVInvoker, sv.Key)
	assert.Len(t, sv.Value, 1+4+1+4)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestStatusVarIterUnknownKeyStopsCleanly(t *testing.T) {
	w := newByteWriter()
	w.int1(byte(SVFlags2))
	w.bytes(make([]byte, 4))
	w.int1(0x7f) // not a recognized key
	w.bytes([]byte{9, 9, 9})
	it := newStatusVarIter(w.Bytes())

	sv, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, SVFlags2, sv.Key)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestStatusVarIterEmptyBuffer(t *testing.T) {
	it := newStatusVarIter(nil)
	_, ok := it.Next()
	assert.False(t, ok)
}
