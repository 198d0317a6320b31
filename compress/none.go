package compress

import (
	"fmt"

	"github.com/brightwell/sas7bdat/errs"
)

// noneCodec is a straight copy; it fails if src carries more bytes than
// dst can hold (spec.md §4.3.3).
type noneCodec struct{}

func (noneCodec) Decompress(dst, src []byte) error {
	if len(src) > len(dst) {
		return fmt.Errorf("compress: none: src longer than dst: %w", errs.ErrBadCodec)
	}

	n := copy(dst, src)
	clear(dst[n:])

	return nil
}
