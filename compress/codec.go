// Package compress implements the two SAS-specific block decompressors
// (RLE and RDC) plus the trivial None codec, sharing a fixed-output-size
// contract (spec.md §4.3). It mirrors the pluggable-codec shape of
// arloliu-mebo's compress package, adapted from a streaming frame codec
// interface to fixed-size block expansion.
package compress

import (
	"fmt"

	"github.com/brightwell/sas7bdat/errs"
	"github.com/brightwell/sas7bdat/format"
)

// Decompressor expands a compressed span into exactly len(dst) bytes,
// zero-filling any unused tail.
type Decompressor interface {
	Decompress(dst, src []byte) error
}

// GetDecompressor returns the Decompressor for a file's declared
// compression scheme.
func GetDecompressor(c format.Compression) (Decompressor, error) {
	switch c {
	case format.CompressionNone:
		return noneCodec{}, nil
	case format.CompressionRLE:
		return rleCodec{}, nil
	case format.CompressionRDC:
		return rdcCodec{}, nil
	default:
		return nil, fmt.Errorf("compress: scheme %s: %w", c, errs.ErrUnsupportedCompression)
	}
}
