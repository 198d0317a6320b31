package sas7bdat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/brightwell/sas7bdat/decode"
	"github.com/brightwell/sas7bdat/errs"
	"github.com/brightwell/sas7bdat/format"
	"github.com/brightwell/sas7bdat/internal/options"
	"github.com/brightwell/sas7bdat/internal/pool"
	"github.com/brightwell/sas7bdat/section"
)

type pageReadResult struct {
	n   int
	err error
}

// startPageRead issues one asynchronous page read; it is the row reader's
// single outstanding I/O operation at any time (spec.md §5).
func startPageRead(f io.Reader, buf []byte) <-chan pageReadResult {
	ch := make(chan pageReadResult, 1)
	go func() {
		n, err := readFull(f, buf)
		ch <- pageReadResult{n: n, err: err}
	}()

	return ch
}

// ReadRows returns a lazy, forward-only, cancellable sequence of decoded
// rows. Each iteration opens its own sequentially-scanning handle; the
// metadata and column schema are shared read-only with the Reader (spec.md
// §5, §6.3). The yielded cell slice aliases a destination buffer owned by
// the iteration and is only valid until the loop body returns control
// (spec.md §9 "Ownership of pooled buffers").
func (r *Reader) ReadRows(opts ...ReadOption) iter.Seq2[[]decode.Cell, error] {
	return func(yield func([]decode.Cell, error) bool) {
		cfg := newReadConfig()
		if err := options.Apply(cfg, opts...); err != nil {
			yield(nil, err)
			return
		}

		if cfg.ctx.Err() != nil {
			yield(nil, fmt.Errorf("sas7bdat: %w", errs.ErrCancelled))
			return
		}

		indices := cfg.projectionIndices(r.columns)
		dest := make([]decode.Cell, len(indices))

		f, err := os.Open(r.path)
		if err != nil {
			yield(nil, fmt.Errorf("sas7bdat: reopen for iteration: %w", errs.ErrFileNotFound))
			return
		}
		defer f.Close()

		if _, err := f.Seek(int64(r.meta.HeaderLength), io.SeekStart); err != nil {
			yield(nil, err)
			return
		}

		pageLen := r.meta.PageLength
		bufSize := cfg.bufferSize
		if bufSize < 2*pageLen {
			bufSize = 2 * pageLen
		}
		if sys := os.Getpagesize(); bufSize < sys {
			bufSize = sys
		}
		src := bufio.NewReaderSize(f, bufSize)
		bufA := pool.GetPageBuffer(pageLen)
		bufB := pool.GetPageBuffer(pageLen)
		defer pool.PutPageBuffer(pageLen, bufA)
		defer pool.PutPageBuffer(pageLen, bufB)

		scratch := pool.GetScratchBuffer()
		defer pool.PutScratchBuffer(scratch)

		current, spare := bufA, bufB
		pending := startPageRead(src, current)

		rowsEmitted := 0
		skip := cfg.skipRows
		maxRows := cfg.maxRows
		yielded := 0

		for {
			res := <-pending
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					return
				}
				yield(nil, res.err)
				return
			}
			if res.n < pageLen {
				return
			}
			if cfg.ctx.Err() != nil {
				yield(nil, fmt.Errorf("sas7bdat: %w", errs.ErrCancelled))
				return
			}

			nextPending := startPageRead(src, spare)

			page, err := section.ParsePage(current, r.header.PageBitOffset(), r.header.IntegerWidth(), r.header.Endian)
			if err != nil {
				yield(nil, err)
				return
			}

			rows, err := r.pageRowSlices(page, rowsEmitted, scratch)
			if err != nil {
				yield(nil, err)
				return
			}

			for _, row := range rows {
				if rowsEmitted >= r.meta.RowCount {
					return
				}
				rowsEmitted++

				if skip > 0 {
					skip--
					continue
				}
				if maxRows >= 0 && yielded >= maxRows {
					return
				}

				cells := projectRow(row, r.columns, indices, dest)
				yielded++
				if !yield(cells, nil) {
					return
				}
				if cfg.ctx.Err() != nil {
					yield(nil, fmt.Errorf("sas7bdat: %w", errs.ErrCancelled))
					return
				}
			}

			if rowsEmitted >= r.meta.RowCount {
				return
			}

			current, spare = spare, current
			pending = nextPending
		}
	}
}

// pageRowSlices enumerates row-length byte slices from a classified page,
// polymorphic on its kind (spec.md §4.8).
func (r *Reader) pageRowSlices(page *section.Page, rowsEmitted int, scratch *pool.ByteBuffer) ([][]byte, error) {
	rowLen := r.meta.RowLength

	switch {
	case page.IsData():
		return dataPageRows(page, r.header.PageBitOffset(), rowLen), nil
	case page.IsMix():
		return r.mixPageRows(page, rowsEmitted, rowLen), nil
	case page.IsMeta():
		return r.metaPageRows(page, rowLen, scratch)
	default:
		return nil, nil
	}
}

func dataPageRows(page *section.Page, bitOffset, rowLen int) [][]byte {
	if rowLen <= 0 {
		return nil
	}

	start := bitOffset + 8
	rows := make([][]byte, 0, page.BlockCount)
	for i := 0; i < page.BlockCount; i++ {
		s := start + i*rowLen
		e := s + rowLen
		if e > len(page.Bytes) {
			break
		}
		rows = append(rows, page.Bytes[s:e])
	}

	return rows
}

func (r *Reader) mixPageRows(page *section.Page, rowsEmitted, rowLen int) [][]byte {
	if rowLen <= 0 {
		return nil
	}

	w := r.header.IntegerWidth()
	H := r.header.PageBitOffset() + 8 + page.SubheaderCount*(3*w)
	if rem := H % 8; rem != 0 {
		H += 8 - rem
	}

	count := r.meta.MixPageRowCount
	if remaining := r.meta.RowCount - rowsEmitted; remaining < count {
		count = remaining
	}
	if count < 0 {
		count = 0
	}

	rows := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		s := H + i*rowLen
		e := s + rowLen
		if e > r.meta.PageLength || e > len(page.Bytes) {
			break
		}
		rows = append(rows, page.Bytes[s:e])
	}

	return rows
}

func (r *Reader) metaPageRows(page *section.Page, rowLen int, scratch *pool.ByteBuffer) ([][]byte, error) {
	descs, err := page.Descriptors(r.header.Endian)
	if err != nil {
		return nil, err
	}

	fileCompressed := r.meta.Compression != format.CompressionNone

	var rows [][]byte
	for i := range descs {
		d := &descs[i]
		if !d.IsEmbeddedDataCandidate(fileCompressed) {
			continue
		}

		body := page.Bytes[d.Offset : d.Offset+d.Length]
		if len(body) >= rowLen {
			rows = append(rows, append([]byte(nil), body[:rowLen]...))
			continue
		}

		scratch.Reset()
		scratch.ExtendOrGrow(rowLen)
		out := scratch.Bytes()
		if err := r.decompressor.Decompress(out, body); err != nil {
			return nil, err
		}
		rows = append(rows, append([]byte(nil), out...))
	}

	return rows, nil
}
