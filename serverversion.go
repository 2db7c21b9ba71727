package binlog

import (
	"strconv"
	"strings"
)

// serverVersionTriple is the (major, minor, patch) parsed out of an FDE's
// NUL-terminated server-version string. Any missing or non-numeric
// component is treated as 0, per §4.5: checksum policy inference must
// never fail on a weird version string, only degrade to "no checksum".
type serverVersionTriple [3]int

func parseServerVersion(s string) serverVersionTriple {
	if i := strings.IndexByte(s, '-'); i != -1 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '+'); i != -1 {
		s = s[:i]
	}
	var v serverVersionTriple
	parts := strings.SplitN(s, ".", 3)
	for i, p := range parts {
		if i >= 3 {
			break
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		v[i] = n
	}
	return v
}

func (v serverVersionTriple) lt(o serverVersionTriple) bool {
	for i := 0; i < 3; i++ {
		if v[i] != o[i] {
			return v[i] < o[i]
		}
	}
	return false
}

var checksumMinVersion = serverVersionTriple{5, 6, 1}
