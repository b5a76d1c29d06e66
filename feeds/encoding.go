package feeds

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// FixEncoding repairs text that was written as UTF-8 but read back as Latin-1,
// which is how the export stores anything outside ASCII ("Ã¸" instead of "ø").
// Text that is not such a mis-decoding is returned unchanged.
func FixEncoding(text string) string {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return text
	}
	if !utf8.ValidString(latin1) {
		return text
	}
	return latin1
}
