package compress

import (
	"fmt"

	"github.com/brightwell/sas7bdat/errs"
)

// rdcCodec implements SAS's "RDC" back-reference scheme identified by the
// magic string "SASYZCR2" (spec.md §4.3.2): a 16-bit control word consumed
// bit by bit selects, per bit, either a literal byte or a marker-encoded
// run/back-reference command.
type rdcCodec struct{}

func (rdcCodec) Decompress(dst, src []byte) error {
	clear(dst)

	oi, ii := 0, 0
	var ctrl, mask uint16

	readByte := func() (byte, bool) {
		if ii >= len(src) {
			return 0, false
		}
		b := src[ii]
		ii++
		return b, true
	}

	fetchControl := func() bool {
		if ii+2 > len(src) {
			return false
		}
		ctrl = uint16(src[ii])<<8 | uint16(src[ii+1])
		ii += 2
		mask = 0x8000
		return true
	}

	write := func(b byte, n int) {
		for k := 0; k < n && oi < len(dst); k++ {
			dst[oi] = b
			oi++
		}
	}

	backref := func(offset, length int) error {
		if offset > oi {
			return fmt.Errorf("compress: rdc: back-reference offset %d exceeds output position %d: %w", offset, oi, errs.ErrBadCodec)
		}

		start := oi - offset
		for k := 0; k < length && oi < len(dst); k++ {
			dst[oi] = dst[start+(k%offset)]
			oi++
		}

		return nil
	}

	if !fetchControl() {
		return nil
	}

	for oi < len(dst) {
		if mask == 0 {
			if !fetchControl() {
				break
			}
		}

		bit := ctrl & mask
		mask >>= 1

		if bit == 0 {
			b, ok := readByte()
			if !ok {
				break
			}
			dst[oi] = b
			oi++
			continue
		}

		m, ok := readByte()
		if !ok {
			break
		}

		cmd := m >> 4
		cnt := int(m & 0x0F)

		switch {
		case cmd == 0:
			b, _ := readByte()
			write(b, cnt+3)
		case cmd == 1:
			e, _ := readByte()
			b, _ := readByte()
			write(b, cnt+(int(e)<<4)+19)
		case cmd == 2:
			e, _ := readByte()
			c, _ := readByte()
			offset := cnt + 3 + (int(e) << 4)
			if err := backref(offset, int(c)+16); err != nil {
				return err
			}
		default: // cmd in [3..15]
			e, _ := readByte()
			offset := cnt + 3 + (int(e) << 4)
			if err := backref(offset, int(cmd)); err != nil {
				return err
			}
		}
	}

	return nil
}
