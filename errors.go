package binlog

import (
	"io"

	"github.com/pkg/errors"
)

// ErrInvalidFileHeader is returned when the 4-byte binlog file sentinel
// does not match "\xfebin".
var ErrInvalidFileHeader = errors.New("binlog: invalid file header")

// ErrTrailingBytes is returned by a payload decoder that finished parsing
// its declared fields but the event body still has unconsumed bytes.
// Some historical server builds emit slightly malformed events (notably
// a handful of XID_EVENTs); callers that need to tolerate those may
// downgrade this error to a warning instead of treating it as fatal.
var ErrTrailingBytes = errors.New("binlog: trailing bytes remaining in event body")

// ErrNoActiveTableMap names the case of a rows event whose table_id has no
// corresponding TableMapEvent. No function in this package returns it:
// the stream reader does not record TableMapEvents.
var ErrNoActiveTableMap = errors.New("binlog: no TableMapEvent for table id")

// IsTruncated reports whether err indicates the source ended before a
// declared length was filled.
func IsTruncated(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
