package channels

import (
	"strconv"
	"strings"
)

const markedPrefix = "-100"

// NormalizeID rewrites a numeric channel identifier into the -100 prefixed
// form. Anything that is not an integer (usernames, links) is returned as is.
//
//	"1234567890"     -> "-1001234567890"
//	"-1234567890"    -> "-1001234567890"
//	"-1001234567890" -> "-1001234567890"
func NormalizeID(id string) string {
	id = strings.TrimPrefix(strings.TrimSpace(id), "+")
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return id
	}
	if strings.HasPrefix(id, markedPrefix) {
		return id
	}
	return markedPrefix + strings.TrimPrefix(id, "-")
}

// FormatID renders an identifier for display. Negative ids that lack the
// -100 prefix get it; all others are printed unchanged.
func FormatID(id int64) string {
	s := strconv.FormatInt(id, 10)
	if id < 0 && !strings.HasPrefix(s, markedPrefix) {
		return markedPrefix + s[1:]
	}
	return s
}

// RawID extracts the bare channel id from a -100 prefixed identifier.
func RawID(marked string) (int64, bool) {
	if !strings.HasPrefix(marked, markedPrefix) {
		return 0, false
	}
	raw, err := strconv.ParseInt(marked[len(markedPrefix):], 10, 64)
	if err != nil || raw <= 0 {
		return 0, false
	}
	return raw, true
}

// MarkedID is the inverse of RawID.
func MarkedID(raw int64) int64 {
	return -1000000000000 - raw
}
