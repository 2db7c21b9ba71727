package binlog

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumOffAlwaysZero(t *testing.T) {
	ev := Event{Header: EventHeader{EventType: NewRaw(QUERY_EVENT)}, Body: []byte{1, 2, 3}}
	assert.Equal(t, uint32(0), ev.ChecksumFor(ChecksumOff))
}

func TestChecksumForCoversHeaderAndBody(t *testing.T) {
	ev := Event{
		Header: EventHeader{
			Timestamp: 1, EventType: NewRaw(QUERY_EVENT), ServerID: 2,
			EventSize: eventHeaderLen + 3, LogPos: 4, Flags: NewRaw(uint16(0)),
		},
		Body: []byte{0xaa, 0xbb, 0xcc},
	}
	got := ev.ChecksumFor(ChecksumCRC32)

	w := newByteWriter()
	ev.Header.encode(w)
	w.bytes(ev.Body)
	want := crc32.ChecksumIEEE(w.Bytes())
	assert.Equal(t, want, got)
}

func TestChecksumForFDEIncludesTrailingAlgByteOnlyOnce(t *testing.T) {
	fdeBody := buildFDEBody("5.7.30-log", []byte{13, 8, 0}, ChecksumCRC32, true)
	ev := Event{
		Header: EventHeader{
			EventType: NewRaw(FORMAT_DESCRIPTION_EVENT),
			EventSize: eventHeaderLen + uint32(len(fdeBody)),
		},
		Body:        fdeBody,
		ChecksumAlg: ChecksumCRC32,
	}
	got := ev.ChecksumFor(ChecksumCRC32)

	w := newByteWriter()
	ev.Header.encode(w)
	w.bytes(fdeBody)
	want := crc32.ChecksumIEEE(w.Bytes())
	assert.Equal(t, want, got)
}
