package binlog

// EventFooter carries the checksum policy a stream's FDE established.
type EventFooter struct {
	Alg ChecksumAlg
}

const fdeServerVersionOffset = 2 // after the 2-byte binlog_version field

// versionSupportsChecksum reports whether the server version embedded at
// the front of an FDE body is new enough to carry a checksum-algorithm
// descriptor byte at all, per §4.5. fdeBody only needs its fixed
// BinlogVersion+ServerVersion prefix intact; it works whether or not a
// trailer is still attached.
func versionSupportsChecksum(fdeBody []byte) bool {
	if len(fdeBody) < fdeServerVersionOffset+fdeServerVersionLen {
		return false
	}
	sv := string(fdeBody[fdeServerVersionOffset : fdeServerVersionOffset+fdeServerVersionLen])
	if i := indexByte([]byte(sv), 0); i != -1 {
		sv = sv[:i]
	}
	return !parseServerVersion(sv).lt(checksumMinVersion)
}

// decodeEventFooter infers the checksum policy a stream's FDE
// establishes, reading the FDE's *raw* event bytes exactly as received
// off the wire or file (body immediately followed by a checksum trailer
// if one is present) — call this before any trailer has been split off.
// A server predating checksum support never carries a descriptor byte or
// a trailer. Otherwise the descriptor sits 5 bytes from the end (1
// algorithm byte followed by the 4-byte CRC32), per §4.5.
func decodeEventFooter(rawFDEBody []byte) EventFooter {
	if !versionSupportsChecksum(rawFDEBody) {
		return EventFooter{Alg: ChecksumOff}
	}
	const tail = 1 + 4
	if len(rawFDEBody) < tail {
		return EventFooter{Alg: ChecksumOff}
	}
	return EventFooter{Alg: ChecksumAlg(rawFDEBody[len(rawFDEBody)-tail])}
}

// checksumApplies implements the §4.7 policy: a checksum trailer is
// present iff the stream's footer declares a non-OFF algorithm. The FDE
// always carries a trailer once checksums are in use, same as every
// other event in that stream, since the algorithm is stream-wide.
func checksumApplies(footer EventFooter, isFDE bool) bool {
	_ = isFDE
	return footer.Alg != ChecksumOff
}
