package binlog

import "bytes"

// FileHeaderLen is the length of the binlog file sentinel.
const FileHeaderLen = 4

// FileHeaderValue is the fixed 4-byte sentinel ("\xfebin") that appears
// exactly once, at offset 0, in a binlog file. It is absent when the
// stream is delivered directly from a server (stream mode).
var FileHeaderValue = []byte{0xfe, 'b', 'i', 'n'}

// DecodeFileHeader validates that buf is exactly the binlog file sentinel.
func DecodeFileHeader(buf []byte) error {
	if !bytes.Equal(buf, FileHeaderValue) {
		return ErrInvalidFileHeader
	}
	return nil
}

// EncodeFileHeader returns the sentinel bytes.
func EncodeFileHeader() []byte {
	return append([]byte(nil), FileHeaderValue...)
}
