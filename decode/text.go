package decode

import (
	"github.com/brightwell/sas7bdat/charset"
	"github.com/brightwell/sas7bdat/endian"
)

// DecodeText trims trailing 0x00/0x20 then leading 0x20 from raw and
// decodes the remainder with dec. An all-blank/NUL cell decodes to an
// empty string, never absent (spec.md §4.4).
func DecodeText(raw []byte, dec *charset.Decoder) string {
	return dec.Decode(endian.TrimFixedText(raw))
}
