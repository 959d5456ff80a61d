package encoding

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// DecodeText returns a valid UTF-8 rendition of a text field received from
// the backend. Legacy imports into the platform occasionally carry month
// labels and addresses in a single-byte encoding, which would otherwise
// surface as mojibake ("D\xe9cembre") and defeat month resolution.
//
// Detection order:
//  1. Valid UTF-8 is returned as-is
//  2. Heuristic charset detection via chardet
//  3. Fallback to Windows-1252, the usual culprit
func DecodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	detector := chardet.NewTextDetector()

	if result, err := detector.DetectBest([]byte(s)); err == nil {
		switch result.Charset {
		case "ISO-8859-1", "windows-1252":
			if out, err := charmap.Windows1252.NewDecoder().String(s); err == nil {
				return out
			}
		case "ISO-8859-9":
			if out, err := charmap.ISO8859_9.NewDecoder().String(s); err == nil {
				return out
			}
		}
	}

	if out, err := charmap.Windows1252.NewDecoder().String(s); err == nil {
		return out
	}

	// Single-byte decoders do not fail in practice; this is the floor.
	return strings.ToValidUTF8(s, "")
}
