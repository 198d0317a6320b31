// Package sas7bdat is a streaming reader for the SAS7BDAT binary dataset
// format. It exposes file-level metadata, an ordered column schema, and a
// lazy, forward-only sequence of decoded rows.
//
// Reading a file:
//
//	r, err := sas7bdat.Open("data.sas7bdat")
//	if err != nil { ... }
//	defer r.Close()
//
//	for row, err := range r.ReadRows() {
//		if err != nil { ... }
//		_ = row
//	}
package sas7bdat

import (
	"time"

	"github.com/brightwell/sas7bdat/decode"
	"github.com/brightwell/sas7bdat/format"
)

// FileMetadata describes a SAS7BDAT file, parsed once at Open and
// immutable thereafter. It may be shared read-only across concurrent
// iterations without synchronization.
type FileMetadata struct {
	Architecture format.Architecture
	Platform     format.Platform
	Encoding     string

	DatasetName   string
	FileType      string
	SasRelease    string
	SasServerType string
	OsType        string
	OsName        string
	Creator       string
	CreatorProc   string

	DateCreated  time.Time
	DateModified time.Time

	HeaderLength int
	PageLength   int
	PageCount    int

	Compression     format.Compression
	RowLength       int
	RowCount        int
	MixPageRowCount int
	ColumnCount     int

	bigEndian bool
}

// BigEndian reports whether the file declares big-endian byte order.
func (m FileMetadata) BigEndian() bool { return m.bigEndian }

// ColumnInfo describes one column in file order.
type ColumnInfo struct {
	Index       int
	Name        string
	Label       string
	Format      string
	LogicalType format.ColumnType
	Offset      int
	Length      int

	decoder decode.FieldDecoder
}

// Decode converts this column's raw row bytes into a typed cell.
func (c ColumnInfo) Decode(raw []byte) decode.Cell {
	return c.decoder.Decode(raw)
}
