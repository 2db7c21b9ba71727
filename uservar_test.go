package binlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserVarEventRoundTripWithValue(t *testing.T) {
	e := &UserVarEvent{Name: "v1", IsNull: false, Type: 3, Charset: 33, Value: []byte("42"), Flags: 1}
	w := newByteWriter()
	e.encodeBody(w, nil)

	got, err := decodeUserVarEvent(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, e.Name, got.Name)
	assert.False(t, got.IsNull)
	assert.Equal(t, e.Value, got.Value)
	assert.True(t, got.HasFlags)
	assert.Equal(t, e.Flags, got.Flags)
}

func TestUserVarEventNull(t *testing.T) {
	e := &UserVarEvent{Name: "v1", IsNull: true}
	w := newByteWriter()
	e.encodeBody(w, nil)

	got, err := decodeUserVarEvent(w.Bytes())
	require.NoError(t, err)
	assert.True(t, got.IsNull)
}

// TestUserVarEventMissingFlagsByteNormalizedOnEncode documents the open
// question's resolution: a legacy source event without the trailing flags
// byte decodes with HasFlags=false, but re-encoding always adds it back.
func TestUserVarEventMissingFlagsByteNormalizedOnEncode(t *testing.T) {
	w := newByteWriter()
	w.int4(2)
	w.string("v1")
	w.int1(0) // not null
	w.int1(3)
	w.int4(33)
	w.int4(2)
	w.string("42")
	// no trailing flags byte

	got, err := decodeUserVarEvent(w.Bytes())
	require.NoError(t, err)
	assert.False(t, got.HasFlags)

	w2 := newByteWriter()
	got.encodeBody(w2, nil)
	assert.Len(t, w2.Bytes(), len(w.Bytes())+1)
}
