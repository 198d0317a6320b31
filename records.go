package sas7bdat

import (
	"iter"

	"github.com/brightwell/sas7bdat/decode"
)

// ReadRecords maps each decoded row through transform, producing a lazy
// sequence of caller-chosen records (spec.md §6.3 read_records). Methods
// cannot carry type parameters in Go, so this is a free function taking
// the reader explicitly, mirroring the options package's generic-helper
// shape.
func ReadRecords[T any](r *Reader, transform func(columns []ColumnInfo, cells []decode.Cell) (T, error), opts ...ReadOption) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		for cells, err := range r.ReadRows(opts...) {
			if err != nil {
				yield(zero, err)
				return
			}

			rec, err := transform(r.columns, cells)
			if err != nil {
				yield(zero, err)
				return
			}

			if !yield(rec, nil) {
				return
			}
		}
	}
}
