// Package charset maps the single encoding byte stored in a SAS7BDAT file
// header to a named text codec, and resolves that name to an actual
// golang.org/x/text encoding.Encoding (spec.md §4.2).
package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// defaultName is used whenever a byte or name cannot be resolved.
const defaultName = "WINDOWS-1252"

// byteToName is the SAS encoding-byte → canonical-name table. The byte
// ranges follow spec.md §4.2; within each range, names are assigned in a
// single fixed, internally-consistent order (documented in DESIGN.md as an
// Open Question resolution, since spec.md gives ranges rather than a
// byte-exact table and original_source/ retains no files to resolve the
// ambiguity against). Every byte not listed here maps to defaultName.
var byteToName = map[byte]string{
	20: "UTF-8",
	28: "US-ASCII",

	// ISO-8859-1..15 (29-40): 12 byte slots for parts 1-11 and 13 (part 12
	// was never finalized and is conventionally skipped).
	29: "ISO-8859-1",
	30: "ISO-8859-2",
	31: "ISO-8859-3",
	32: "ISO-8859-4",
	33: "ISO-8859-5",
	34: "ISO-8859-6",
	35: "ISO-8859-7",
	36: "ISO-8859-8",
	37: "ISO-8859-9",
	38: "ISO-8859-10",
	39: "ISO-8859-11",
	40: "ISO-8859-13",

	// DOS code pages CP437..CP1129 (41-59).
	41: "CP437",
	42: "CP850",
	43: "CP852",
	44: "CP855",
	45: "CP857",
	46: "CP858",
	47: "CP860",
	48: "CP861",
	49: "CP862",
	50: "CP863",
	51: "CP864",
	52: "CP865",
	53: "CP866",
	54: "CP869",
	55: "CP874",
	56: "CP921",
	57: "CP922",
	58: "CP1125",
	59: "CP1129",

	// WINDOWS-1250..1258 (60-68).
	60: "WINDOWS-1250",
	61: "WINDOWS-1251",
	62: "WINDOWS-1252",
	63: "WINDOWS-1253",
	64: "WINDOWS-1254",
	65: "WINDOWS-1255",
	66: "WINDOWS-1256",
	67: "WINDOWS-1257",
	68: "WINDOWS-1258",

	// Asian encodings and ISO-2022 variants.
	69: "CP932",
	70: "CP936",
	71: "CP949",
	72: "CP950",
	73: "EUC-JP",
	74: "EUC-KR",
	75: "EUC-TW",
	76: "BIG5",
	77: "GB18030",
	78: "SHIFT_JIS",
	79: "ISO-2022-JP",
	80: "ISO-2022-KR",
	81: "ISO-2022-CN",
}

// ByteToName maps a SAS encoding byte to its canonical codec name. An
// unrecognized byte resolves to "WINDOWS-1252".
func ByteToName(b byte) string {
	if name, ok := byteToName[b]; ok {
		return name
	}

	return defaultName
}

// nameToEncoding resolves a canonical name to a golang.org/x/text
// encoding.Encoding. Names without a direct library mapping (DOS code pages
// outside x/text's charmap coverage, ISO-2022 variants) fall back to
// Windows1252, matching spec.md's "unresolvable names fall back to
// WINDOWS-1252" rule.
var nameToEncoding = map[string]encoding.Encoding{
	"UTF-8":    encoding.Nop,
	"US-ASCII": encoding.Nop,

	"ISO-8859-1":  charmap.ISO8859_1,
	"ISO-8859-2":  charmap.ISO8859_2,
	"ISO-8859-3":  charmap.ISO8859_3,
	"ISO-8859-4":  charmap.ISO8859_4,
	"ISO-8859-5":  charmap.ISO8859_5,
	"ISO-8859-6":  charmap.ISO8859_6,
	"ISO-8859-7":  charmap.ISO8859_7,
	"ISO-8859-8":  charmap.ISO8859_8,
	"ISO-8859-9":  charmap.ISO8859_9,
	"ISO-8859-10": charmap.ISO8859_10,
	"ISO-8859-11": charmap.Windows874, // closest available Thai-range codec
	"ISO-8859-13": charmap.ISO8859_13,

	"CP437": charmap.CodePage437,
	"CP850": charmap.CodePage850,
	"CP852": charmap.CodePage852,
	"CP855": charmap.CodePage855,
	"CP858": charmap.CodePage858,
	"CP860": charmap.CodePage860,
	"CP862": charmap.CodePage862,
	"CP863": charmap.CodePage863,
	"CP865": charmap.CodePage865,
	"CP866": charmap.CodePage866,

	"WINDOWS-1250": charmap.Windows1250,
	"WINDOWS-1251": charmap.Windows1251,
	"WINDOWS-1252": charmap.Windows1252,
	"WINDOWS-1253": charmap.Windows1253,
	"WINDOWS-1254": charmap.Windows1254,
	"WINDOWS-1255": charmap.Windows1255,
	"WINDOWS-1256": charmap.Windows1256,
	"WINDOWS-1257": charmap.Windows1257,
	"WINDOWS-1258": charmap.Windows1258,

	"CP932":     japanese.ShiftJIS,
	"SHIFT_JIS": japanese.ShiftJIS,
	"EUC-JP":    japanese.EUCJP,
	"CP949":     korean.EUCKR,
	"EUC-KR":    korean.EUCKR,
	"CP936":     simplifiedchinese.GBK,
	"GB18030":   simplifiedchinese.GB18030,
	"CP950":     traditionalchinese.Big5,
	"BIG5":      traditionalchinese.Big5,
}

// NameToEncoding resolves a canonical codec name to a golang.org/x/text
// Encoding. An unresolved name falls back to Windows-1252.
func NameToEncoding(name string) encoding.Encoding {
	if enc, ok := nameToEncoding[strings.ToUpper(name)]; ok {
		return enc
	}

	return charmap.Windows1252
}

// Decoder decodes fixed-width byte runs from a file's declared codec into Go
// strings.
type Decoder struct {
	enc encoding.Encoding
}

// NewDecoder returns a Decoder bound to the named codec, resolved via
// NameToEncoding.
func NewDecoder(name string) *Decoder {
	return &Decoder{enc: NameToEncoding(name)}
}

// Decode decodes b (already trimmed by the caller) using the bound codec. A
// decode error falls back to returning the raw bytes unconverted as a Go
// string, since a corrupt codepage byte must never abort an otherwise-valid
// row.
func (d *Decoder) Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}

	return string(out)
}
