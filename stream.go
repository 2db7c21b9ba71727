package binlog

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// checksumTrailerLen is the width of the CRC32 trailer appended to every
// event once a stream's checksum policy is on.
const checksumTrailerLen = 4

// EventStreamReader decodes a sequence of events from an io.Reader
// positioned right after the 4-byte file header (or at the start of a
// network binlog dump, which carries no file header at all). It tracks
// the active FormatDescriptionEvent and checksum policy across calls to
// Next, exactly as a replica connection or file reader must.
type EventStreamReader struct {
	r      io.Reader
	fde    FormatDescriptionEvent
	footer EventFooter
}

// NewEventStreamReader constructs a reader seeded with the default FDE
// for binlogVersion, used until a real FORMAT_DESCRIPTION_EVENT is seen.
func NewEventStreamReader(r io.Reader, binlogVersion uint16) *EventStreamReader {
	return &EventStreamReader{r: r, fde: defaultFDE(binlogVersion)}
}

// FDE returns the FormatDescriptionEvent currently in effect.
func (s *EventStreamReader) FDE() *FormatDescriptionEvent { return &s.fde }

// Next reads and returns the next event. It returns io.EOF (unwrapped,
// checkable with ==) when the stream ends cleanly on an event boundary,
// and a wrapped io.ErrUnexpectedEOF (see IsTruncated) when it ends in the
// middle of a header or body.
func (s *EventStreamReader) Next() (Event, error) {
	hdrBuf := make([]byte, eventHeaderLen)
	if _, err := io.ReadFull(s.r, hdrBuf); err != nil {
		if err == io.EOF {
			return Event{}, io.EOF
		}
		return Event{}, errors.Wrap(io.ErrUnexpectedEOF, "binlog: truncated event header")
	}

	hr := newByteReader(hdrBuf)
	header := decodeEventHeader(hr)
	if err := hr.finish(); err != nil {
		return Event{}, err
	}

	if int(header.EventSize) < eventHeaderLen {
		return Event{}, errors.New("binlog: event size smaller than header length")
	}
	rawBody := make([]byte, int(header.EventSize)-eventHeaderLen)
	if _, err := io.ReadFull(s.r, rawBody); err != nil {
		return Event{}, errors.Wrap(io.ErrUnexpectedEOF, "binlog: truncated event body")
	}

	typ := header.EventType.Value()

	footer := s.footer
	if typ == FORMAT_DESCRIPTION_EVENT {
		footer = decodeEventFooter(rawBody)
	}

	body := rawBody
	var alg ChecksumAlg
	var checksum uint32
	if checksumApplies(footer, typ == FORMAT_DESCRIPTION_EVENT) {
		if len(rawBody) < checksumTrailerLen {
			return Event{}, errors.Wrap(ErrTrailingBytes, "binlog: event shorter than checksum trailer")
		}
		split := len(rawBody) - checksumTrailerLen
		body, alg = rawBody[:split], footer.Alg
		checksum = binary.LittleEndian.Uint32(rawBody[split:])
	}

	ev := Event{Header: header, Body: body, ChecksumAlg: alg, Checksum: checksum}

	if typ == FORMAT_DESCRIPTION_EVENT {
		fde, err := decodeFDE(body)
		if err != nil {
			return ev, err
		}
		s.fde = fde
		s.footer = footer
	}

	return ev, nil
}

// EventStreamWriter is the write-side mirror of EventStreamReader: it
// writes a header, body, and (when the active FDE's policy calls for it)
// a CRC32 trailer for each event, and tracks the FDE across calls exactly
// as the reader does.
type EventStreamWriter struct {
	w      io.Writer
	fde    FormatDescriptionEvent
	footer EventFooter
}

// NewEventStreamWriter constructs a writer seeded with the default FDE
// for binlogVersion.
func NewEventStreamWriter(w io.Writer, binlogVersion uint16) *EventStreamWriter {
	return &EventStreamWriter{w: w, fde: defaultFDE(binlogVersion)}
}

// FDE returns the FormatDescriptionEvent currently in effect.
func (s *EventStreamWriter) FDE() *FormatDescriptionEvent { return &s.fde }

// WriteEvent encodes header+body(+trailer) for ev and writes it out. The
// caller is responsible for keeping ev.Header.EventSize consistent with
// len(ev.Body) plus whatever trailer this stream's policy adds; use
// SizeEvent to compute it first if unsure.
func (s *EventStreamWriter) WriteEvent(ev Event) error {
	w := newByteWriter()
	ev.Header.encode(w)
	w.bytes(ev.Body)

	typ := ev.Header.EventType.Value()
	footer := s.footer
	var newFDE *FormatDescriptionEvent
	if typ == FORMAT_DESCRIPTION_EVENT {
		fde, err := decodeFDE(ev.Body)
		if err != nil {
			return err
		}
		footer = fde.footer
		newFDE = &fde
	}
	if checksumApplies(footer, typ == FORMAT_DESCRIPTION_EVENT) {
		crc := crc32Checksum(w.Bytes())
		var trailer [checksumTrailerLen]byte
		binary.LittleEndian.PutUint32(trailer[:], crc)
		w.bytes(trailer[:])
	}
	if w.err != nil {
		return w.err
	}

	if _, err := s.w.Write(w.Bytes()); err != nil {
		return errors.Wrap(err, "binlog: write event")
	}

	if newFDE != nil {
		s.fde = *newFDE
		s.footer = footer
	}
	return nil
}

// SizeEvent returns the EventSize header field that must be set on an
// event with the given body length, given this stream's current
// checksum policy.
func (s *EventStreamWriter) SizeEvent(bodyLen int) uint32 {
	n := eventHeaderLen + bodyLen
	if checksumApplies(s.footer, false) {
		n += checksumTrailerLen
	}
	return uint32(n)
}
