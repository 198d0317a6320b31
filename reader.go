package sas7bdat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/brightwell/sas7bdat/charset"
	"github.com/brightwell/sas7bdat/compress"
	"github.com/brightwell/sas7bdat/decode"
	"github.com/brightwell/sas7bdat/endian"
	"github.com/brightwell/sas7bdat/errs"
	"github.com/brightwell/sas7bdat/section"
)

// Reader is an open SAS7BDAT file: its parsed metadata, column schema, and
// a read-only lock handle. Metadata and columns are immutable after Open
// and safe to share across concurrently iterating callers; each call to
// ReadRows opens its own sequentially-scanning handle (spec.md §5).
type Reader struct {
	path   string
	lock   *os.File
	header *section.FileHeader

	meta    FileMetadata
	columns []ColumnInfo

	decompressor compress.Decompressor

	mu     sync.Mutex
	closed bool
}

// Open parses a SAS7BDAT file's header and metadata subheader graph and
// returns a reader positioned to stream rows.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sas7bdat: open %s: %w", path, errs.ErrFileNotFound)
	}

	header, err := readHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	mp, err := walkMetadata(f, header)
	if err != nil {
		f.Close()
		return nil, err
	}

	decompressor, err := compress.GetDecompressor(mp.Compression)
	if err != nil {
		f.Close()
		return nil, err
	}

	codec := charset.NewDecoder(header.EncodingName)
	columns := bindColumns(mp.Finish(), header.Endian, codec)

	if err := validateColumnOffsets(columns, mp.RowLength); err != nil {
		f.Close()
		return nil, err
	}

	r := &Reader{
		path:         path,
		lock:         f,
		header:       header,
		decompressor: decompressor,
		columns:      columns,
		meta: FileMetadata{
			Architecture:    header.Architecture,
			Platform:        header.Platform,
			Encoding:        header.EncodingName,
			DatasetName:     header.DatasetName,
			FileType:        header.FileType,
			SasRelease:      header.SasRelease,
			SasServerType:   header.SasServerType,
			OsType:          header.OsType,
			OsName:          header.OsName,
			Creator:         mp.Creator,
			CreatorProc:     mp.CreatorProc,
			DateCreated:     header.DateCreated,
			DateModified:    header.DateModified,
			HeaderLength:    header.HeaderLength,
			PageLength:      header.PageLength,
			PageCount:       header.PageCount,
			Compression:     mp.Compression,
			RowLength:       mp.RowLength,
			RowCount:        mp.RowCount,
			MixPageRowCount: mp.MixPageRowCount,
			ColumnCount:     mp.ColumnCount,
			bigEndian:       endian.IsBigEndian(header.Endian),
		},
	}

	return r, nil
}

func readHeader(f io.Reader) (*section.FileHeader, error) {
	prefix := make([]byte, section.FixedHeaderPrefixSize)
	if _, err := readFull(f, prefix); err != nil {
		return nil, err
	}

	hlen, err := section.PeekHeaderLength(prefix)
	if err != nil {
		return nil, err
	}

	buf := prefix
	if hlen > len(prefix) {
		buf = make([]byte, hlen)
		copy(buf, prefix)
		if _, err := readFull(f, buf[len(prefix):]); err != nil {
			return nil, err
		}
	}

	return section.ParseHeader(buf)
}

// readFull reads exactly len(buf) bytes. A clean EOF with zero bytes read
// is returned as (0, io.EOF) for the caller to treat as end-of-stream; any
// other short read is translated into ErrTruncated (spec.md §7).
func readFull(f io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(f, buf)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF) && n == 0:
		return 0, io.EOF
	default:
		return n, fmt.Errorf("sas7bdat: %w", errs.ErrTruncated)
	}
}

func walkMetadata(f *os.File, header *section.FileHeader) (*section.MetadataParser, error) {
	mp := section.NewMetadataParser(header)

	buf := make([]byte, header.PageLength)
	for i := 0; i < header.PageCount; i++ {
		n, err := readFull(f, buf)
		if err != nil {
			if n == 0 {
				break
			}
			return nil, err
		}

		page, err := section.ParsePage(buf, header.PageBitOffset(), header.IntegerWidth(), header.Endian)
		if err != nil {
			return nil, err
		}

		done, err := mp.ProcessPage(page)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	if mp.RowLength == 0 && mp.RowCount > 0 {
		return nil, errs.ErrRowSizeNotSet
	}

	return mp, nil
}

// validateColumnOffsets enforces "offset + length <= row_length" for every
// column (spec.md §3 Invariants).
func validateColumnOffsets(columns []ColumnInfo, rowLength int) error {
	if rowLength == 0 {
		return nil
	}

	for _, c := range columns {
		if c.Offset+c.Length > rowLength {
			return fmt.Errorf("sas7bdat: column %q offset %d length %d exceeds row length %d: %w",
				c.Name, c.Offset, c.Length, rowLength, errs.ErrInvalidColumnOffset)
		}
	}

	return nil
}

func bindColumns(raw []section.RawColumn, eng endian.EndianEngine, codec *charset.Decoder) []ColumnInfo {
	cols := make([]ColumnInfo, len(raw))
	for i, rc := range raw {
		logical := decode.InferType(rc.Storage, rc.Format, rc.Length)
		cols[i] = ColumnInfo{
			Index:       rc.Index,
			Name:        rc.Name,
			Label:       rc.Label,
			Format:      rc.Format,
			LogicalType: logical,
			Offset:      rc.Offset,
			Length:      rc.Length,
			decoder:     decode.NewFieldDecoder(logical, rc.Format, eng, codec),
		}
	}

	return cols
}

// Metadata returns the file's parsed metadata by shared reference.
func (r *Reader) Metadata() FileMetadata { return r.meta }

// Columns returns the file's column schema by shared reference, in file
// order.
func (r *Reader) Columns() []ColumnInfo { return r.columns }

// Close releases the reader's lock handle. Close is idempotent.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	return r.lock.Close()
}
