package logs_receiving

import (
	"strings"
	"unicode/utf8"
)

// decodeText turns raw bytes into text. Invalid UTF-8 sequences become
// U+FFFD, the second result reports whether that happened.
func decodeText(raw []byte) (string, bool) {
	if utf8.Valid(raw) {
		return string(raw), false
	}

	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), true
}
