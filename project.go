package sas7bdat

import "github.com/brightwell/sas7bdat/decode"

// projectRow decodes row's selected columns (in file order) into dest,
// which must have length len(indices). Full projection passes
// indices = [0..len(columns)); subset projection passes a filtered,
// file-ordered list — both share this single write-each-selected-cell
// contract (spec.md §4.9.1).
func projectRow(row []byte, columns []ColumnInfo, indices []int, dest []decode.Cell) []decode.Cell {
	for j, idx := range indices {
		col := columns[idx]
		end := col.Offset + col.Length
		if end > len(row) {
			end = len(row)
		}
		if col.Offset > end {
			dest[j] = decode.Missing
			continue
		}

		dest[j] = col.Decode(row[col.Offset:end])
	}

	return dest
}
