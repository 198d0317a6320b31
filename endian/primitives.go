package endian

import (
	"math"

	"github.com/brightwell/sas7bdat/errs"
)

// ReadUint reads an unsigned integer of the given width (1, 2, 4, or 8 bytes)
// from b at the declared endianness. This is the "integer of width known only
// at run time" primitive: SAS7BDAT uses 4-byte integers in 32-bit format files
// and 8-byte integers in 64-bit format files for most in-page offsets.
func ReadUint(b []byte, width int, engine EndianEngine) (uint64, error) {
	if len(b) < width {
		return 0, errs.ErrTruncated
	}

	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(engine.Uint16(b[:2])), nil
	case 4:
		return uint64(engine.Uint32(b[:4])), nil
	case 8:
		return engine.Uint64(b[:8]), nil
	default:
		return 0, errs.ErrBadField
	}
}

// ReadFloat64 reads an IEEE-754 double by first reading a 64-bit integer at
// the declared endianness and bit-casting it. This matches the on-disk
// representation regardless of host float endianness.
func ReadFloat64(b []byte, engine EndianEngine) (float64, error) {
	if len(b) < 8 {
		return 0, errs.ErrTruncated
	}

	bits := engine.Uint64(b[:8])

	return math.Float64frombits(bits), nil
}

// IsBigEndian reports whether engine is the big-endian engine, as opposed
// to little-endian. SAS7BDAT declares exactly one of the two per file.
func IsBigEndian(engine EndianEngine) bool {
	return engine == GetBigEndianEngine()
}

// TrimFixedText trims trailing 0x00 and 0x20 bytes, then leading 0x20 bytes,
// from a fixed-width text field. The caller decodes the resulting byte slice
// with the file's codec.
func TrimFixedText(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == 0x00 || b[end-1] == 0x20) {
		end--
	}

	start := 0
	for start < end && b[start] == 0x20 {
		start++
	}

	return b[start:end]
}
