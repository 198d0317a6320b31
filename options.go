package sas7bdat

import (
	"context"

	"github.com/brightwell/sas7bdat/internal/options"
)

// readConfig collects the effects of ReadOption values (spec.md §6.2).
type readConfig struct {
	selectedNames   map[string]struct{}
	selectedIndices map[int]struct{}
	skipRows        int
	maxRows         int
	bufferSize      int
	ctx             context.Context
}

func newReadConfig() *readConfig {
	return &readConfig{maxRows: -1, ctx: context.Background()}
}

// ReadOption configures a ReadRows or ReadRecords call.
type ReadOption = options.Option[*readConfig]

// WithSelectedColumnNames restricts row output to the named columns, in
// file order. Ignored if WithSelectedColumnIndices is also given.
func WithSelectedColumnNames(names ...string) ReadOption {
	return options.NoError[*readConfig](func(c *readConfig) {
		c.selectedNames = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.selectedNames[n] = struct{}{}
		}
	})
}

// WithSelectedColumnIndices restricts row output to the given zero-based
// column indices, in file order. Overrides WithSelectedColumnNames.
func WithSelectedColumnIndices(indices ...int) ReadOption {
	return options.NoError[*readConfig](func(c *readConfig) {
		c.selectedIndices = make(map[int]struct{}, len(indices))
		for _, i := range indices {
			c.selectedIndices[i] = struct{}{}
		}
	})
}

// WithSkipRows discards the first n decoded rows before yielding any.
func WithSkipRows(n int) ReadOption {
	return options.NoError[*readConfig](func(c *readConfig) { c.skipRows = n })
}

// WithMaxRows caps the number of rows yielded. Unset means unbounded.
func WithMaxRows(n int) ReadOption {
	return options.NoError[*readConfig](func(c *readConfig) { c.maxRows = n })
}

// WithBufferSize sets the size of the buffered reader that page reads go
// through. The size used is never below 2x the file's declared page length
// or the system page size; unset, that larger floor is used.
func WithBufferSize(n int) ReadOption {
	return options.NoError[*readConfig](func(c *readConfig) { c.bufferSize = n })
}

// WithContext binds an iteration to ctx; cancellation is checked before
// the first read, after every completed read, and after every yielded row
// (spec.md §5 "Cancellation").
func WithContext(ctx context.Context) ReadOption {
	return options.NoError[*readConfig](func(c *readConfig) { c.ctx = ctx })
}

// projectionIndices resolves the configured selection (indices win over
// names; empty selection means full) against the file's columns, in file
// order (spec.md §4.9.1).
func (c *readConfig) projectionIndices(columns []ColumnInfo) []int {
	switch {
	case len(c.selectedIndices) > 0:
		out := make([]int, 0, len(c.selectedIndices))
		for _, col := range columns {
			if _, ok := c.selectedIndices[col.Index]; ok {
				out = append(out, col.Index)
			}
		}
		return out
	case len(c.selectedNames) > 0:
		out := make([]int, 0, len(c.selectedNames))
		for _, col := range columns {
			if _, ok := c.selectedNames[col.Name]; ok {
				out = append(out, col.Index)
			}
		}
		return out
	default:
		out := make([]int, len(columns))
		for i := range out {
			out[i] = i
		}
		return out
	}
}
