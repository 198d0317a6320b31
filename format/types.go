// Package format defines the small closed enumerations shared across the
// sas7bdat module: byte order, address width, source platform, compression
// scheme, a column's on-disk storage kind, and a column's inferred logical
// type.
package format

// Architecture is the integer/offset width declared by the file header: 4
// bytes in 32-bit format files, 8 bytes in 64-bit format files.
type Architecture uint8

const (
	Bit32 Architecture = iota
	Bit64
)

// IntegerWidth returns the width in bytes of page offsets, lengths, and
// counts for this architecture.
func (a Architecture) IntegerWidth() int {
	if a == Bit64 {
		return 8
	}

	return 4
}

// PageBitOffset returns the byte offset within a page at which the page
// header triple (page_type, block_count, subheader_count) begins.
func (a Architecture) PageBitOffset() int {
	if a == Bit64 {
		return 32
	}

	return 16
}

func (a Architecture) String() string {
	switch a {
	case Bit32:
		return "32-bit"
	case Bit64:
		return "64-bit"
	default:
		return "unknown"
	}
}

// Platform is the source operating system recorded in the file header.
type Platform uint8

const (
	PlatformUnknown Platform = iota
	PlatformUnix
	PlatformWindows
)

func (p Platform) String() string {
	switch p {
	case PlatformUnix:
		return "Unix"
	case PlatformWindows:
		return "Windows"
	default:
		return "Unknown"
	}
}

// Compression identifies the block decompression scheme used for a file's
// data pages.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionRLE
	CompressionRDC
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionRLE:
		return "RLE"
	case CompressionRDC:
		return "RDC"
	default:
		return "Unknown"
	}
}

// StorageKind is a column's raw on-disk storage kind, as declared by the
// ColumnAttributes subheader.
type StorageKind uint8

const (
	StorageUnknown StorageKind = iota
	StorageNumber
	StorageString
)

func (s StorageKind) String() string {
	switch s {
	case StorageNumber:
		return "Number"
	case StorageString:
		return "String"
	default:
		return "Unknown"
	}
}

// ColumnType is a column's inferred logical type, derived from its storage
// kind, format string, and width (spec.md §4.5).
type ColumnType uint8

const (
	TypeUnknown ColumnType = iota
	TypeString
	TypeNumber
	TypeDate
	TypeDateTime
	TypeTime
)

func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeNumber:
		return "Number"
	case TypeDate:
		return "Date"
	case TypeDateTime:
		return "DateTime"
	case TypeTime:
		return "Time"
	default:
		return "Unknown"
	}
}
