// Package errs defines the sentinel errors shared across the sas7bdat module.
//
// Callers should compare against these with errors.Is; call sites wrap them
// with additional context using fmt.Errorf("...: %w", ...).
package errs

import "errors"

var (
	// ErrFileNotFound is returned when the target file cannot be opened.
	ErrFileNotFound = errors.New("sas7bdat: file not found")

	// ErrTruncated is returned when a read returns fewer bytes than requested,
	// during header parsing, header extension, page fetch, or mid-row overrun.
	ErrTruncated = errors.New("sas7bdat: truncated read")

	// ErrBadMagic is returned when the first 32 bytes of the file do not match
	// the SAS7BDAT magic constant.
	ErrBadMagic = errors.New("sas7bdat: bad magic number")

	// ErrBadCodec is returned when a decompression command stream is malformed.
	ErrBadCodec = errors.New("sas7bdat: malformed compressed block")

	// ErrBadField is returned when a cell's declared width is not decodable
	// by any field decoder.
	ErrBadField = errors.New("sas7bdat: invalid field width")

	// ErrCancelled is returned when cooperative cancellation was requested
	// during row iteration.
	ErrCancelled = errors.New("sas7bdat: iteration cancelled")

	// ErrInvalidHeaderSize is returned when a header buffer is shorter than
	// the fixed or declared header size.
	ErrInvalidHeaderSize = errors.New("sas7bdat: invalid header size")

	// ErrInvalidPageSize is returned when a page buffer is shorter than the
	// file's declared page length.
	ErrInvalidPageSize = errors.New("sas7bdat: invalid page size")

	// ErrInvalidSubheaderOffset is returned when a subheader descriptor
	// references bytes outside its page.
	ErrInvalidSubheaderOffset = errors.New("sas7bdat: invalid subheader offset")

	// ErrInvalidColumnOffset is returned when a column's offset/length would
	// read past the declared row length.
	ErrInvalidColumnOffset = errors.New("sas7bdat: invalid column offset")

	// ErrRowSizeNotSet is returned when row decoding is attempted before the
	// RowSize subheader has been observed.
	ErrRowSizeNotSet = errors.New("sas7bdat: row size subheader not found")

	// ErrUnsupportedCompression is returned when a compression byte doesn't
	// match any known scheme.
	ErrUnsupportedCompression = errors.New("sas7bdat: unsupported compression")
)
