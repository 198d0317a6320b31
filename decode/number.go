package decode

import (
	"math"

	"github.com/brightwell/sas7bdat/endian"
)

// DecodeNumber interprets raw as an integer of its own width at the file's
// endianness, then bit-casts to an IEEE-754 double (spec.md §4.4). Widths
// 3-7 are short floats: the stored bytes (byte-reversed first in a
// big-endian file) are placed at the start, i.e. the low-order end, of a
// little-endian 8-byte image, and the remaining high-order bytes are
// zero-filled before the bit-cast.
func DecodeNumber(raw []byte, eng endian.EndianEngine) float64 {
	switch len(raw) {
	case 1:
		return float64(raw[0])
	case 2:
		return float64(int16(eng.Uint16(raw[:2])))
	case 8:
		return math.Float64frombits(eng.Uint64(raw[:8]))
	}

	if len(raw) < 3 || len(raw) > 7 {
		return math.NaN()
	}

	var img [8]byte
	if endian.IsBigEndian(eng) {
		for i, b := range raw {
			img[len(raw)-1-i] = b
		}
	} else {
		copy(img[:], raw)
	}

	bits := endian.GetLittleEndianEngine().Uint64(img[:])
	return math.Float64frombits(bits)
}

// IsMissingNumber reports whether a decoded number is the SAS missing-value
// sentinel (any NaN bit pattern).
func IsMissingNumber(v float64) bool { return math.IsNaN(v) }
