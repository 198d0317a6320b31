package section

// Magic is the invariant 32-byte prefix every SAS7BDAT file begins with.
var Magic = [32]byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xC2, 0xEA, 0x81, 0x60,
	0xB3, 0x14, 0x11, 0xCF, 0xBD, 0x92, 0x08, 0x00,
	0x09, 0xC7, 0x31, 0x8C, 0x18, 0x1F, 0x10, 0x11,
}

// Fixed header field offsets (add A1/TOTAL where noted).
const (
	OffsetArchitectureByte = 32
	OffsetA1Byte           = 35
	OffsetEndianByte       = 37
	OffsetPlatformByte     = 39
	OffsetEncodingByte     = 70
	OffsetDatasetName      = 92
	LengthDatasetName      = 64
	OffsetFileType         = 156
	LengthFileType         = 8
	OffsetHeaderLength     = 196 // + A1
	OffsetDateCreated      = 164 // + A1
	OffsetDateModified     = 172 // + A1
	OffsetPageLength       = 200 // + A1
	OffsetPageCount        = 204 // + A1
	OffsetSasRelease       = 216 // + TOTAL
	LengthSasRelease       = 8
	OffsetSasServerType    = 224 // + TOTAL
	LengthSasServerType    = 16
	OffsetOsType           = 240 // + TOTAL
	LengthOsType           = 16
	OffsetOsNameFlag       = 272 // + TOTAL
	OffsetOsNameAlt        = 256 // + TOTAL
	OffsetOsNamePrimary    = 272 // + TOTAL
	LengthOsName           = 16

	FixedHeaderPrefixSize = 288
)

// RowSize subheader field offsets, relative to subheader.offset, in
// multiples of the integer width W unless noted otherwise.
const (
	RowSizeLcsOffsetBit64 = 682
	RowSizeLcsOffsetBit32 = 354
	RowSizeLcpOffsetBit64 = 706
	RowSizeLcpOffsetBit32 = 378

	RowSizeRowLengthWords      = 5
	RowSizeRowCountWords       = 6
	RowSizeColCountP1Words     = 9
	RowSizeColCountP2Words     = 10
	RowSizeMixPageRowCntWords  = 15
)

// Page header bitfield constants (spec.md §4.8).
const (
	PageTypeMeta                  uint16 = 0x0000
	PageTypeData                  uint16 = 0x0100
	PageTypeMix                   uint16 = 0x0200
	PageTypeAmd                   uint16 = 0x0400
	PageTypeMetadataContinuation  uint16 = 0x4000
	PageTypeSpecial               uint16 = 0x8000
	PageTypeHasDeleted            uint16 = 0x0080
	PageTypeExtended              uint16 = 0x0080
	PageTypeCompressed            uint16 = 0x1000
)

// Subheader descriptor status bytes (spec.md §4.7, §3 Invariants).
const (
	CompressFlagTruncated  byte = 1
	CompressFlagCompressed byte = 4
	SubtypeCompressed      byte = 1
)

// SubheaderKind classifies a subheader descriptor's signature.
type SubheaderKind uint8

const (
	SubheaderUnknown SubheaderKind = iota
	SubheaderRowSize
	SubheaderColumnSize
	SubheaderSubheaderCounts
	SubheaderColumnText
	SubheaderColumnName
	SubheaderColumnAttributes
	SubheaderFormatAndLabel
	SubheaderColumnList
)

var signatures64 = map[[8]byte]SubheaderKind{
	{0x00, 0x00, 0x00, 0x00, 0xF7, 0xF7, 0xF7, 0xF7}: SubheaderRowSize,
	{0xF7, 0xF7, 0xF7, 0xF7, 0x00, 0x00, 0x00, 0x00}: SubheaderRowSize,
	{0xF7, 0xF7, 0xF7, 0xF7, 0xFF, 0xFF, 0xFB, 0xFE}: SubheaderRowSize,
	{0xFF, 0xFF, 0xFB, 0xFE, 0xF7, 0xF7, 0xF7, 0xF7}: SubheaderRowSize,

	{0x00, 0x00, 0x00, 0x00, 0xF6, 0xF6, 0xF6, 0xF6}: SubheaderColumnSize,
	{0xF6, 0xF6, 0xF6, 0xF6, 0x00, 0x00, 0x00, 0x00}: SubheaderColumnSize,
	{0xF6, 0xF6, 0xF6, 0xF6, 0xFF, 0xFF, 0xFB, 0xFE}: SubheaderColumnSize,
	{0xFF, 0xFF, 0xFB, 0xFE, 0xF6, 0xF6, 0xF6, 0xF6}: SubheaderColumnSize,

	{0x00, 0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}: SubheaderSubheaderCounts,
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC, 0x00}: SubheaderSubheaderCounts,

	{0xFD, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}: SubheaderColumnText,
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFD}: SubheaderColumnText,

	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}: SubheaderColumnName,

	{0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}: SubheaderColumnAttributes,
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC}: SubheaderColumnAttributes,

	{0xFE, 0xFB, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}: SubheaderFormatAndLabel,
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFB, 0xFE}: SubheaderFormatAndLabel,

	{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}: SubheaderColumnList,
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}: SubheaderColumnList,
}

var signatures32 = map[[4]byte]SubheaderKind{
	{0xF7, 0xF7, 0xF7, 0xF7}: SubheaderRowSize,
	{0xF6, 0xF6, 0xF6, 0xF6}: SubheaderColumnSize,
	{0x00, 0xFC, 0xFF, 0xFF}: SubheaderSubheaderCounts,
	{0xFF, 0xFF, 0xFC, 0x00}: SubheaderSubheaderCounts,
	{0xFD, 0xFF, 0xFF, 0xFF}: SubheaderColumnText,
	{0xFF, 0xFF, 0xFF, 0xFD}: SubheaderColumnText,
	{0xFF, 0xFF, 0xFF, 0xFF}: SubheaderColumnName,
	{0xFC, 0xFF, 0xFF, 0xFF}: SubheaderColumnAttributes,
	{0xFF, 0xFF, 0xFF, 0xFC}: SubheaderColumnAttributes,
	{0xFE, 0xFB, 0xFF, 0xFF}: SubheaderFormatAndLabel,
	{0xFF, 0xFF, 0xFB, 0xFE}: SubheaderFormatAndLabel,
	{0xFE, 0xFF, 0xFF, 0xFF}: SubheaderColumnList,
	{0xFF, 0xFF, 0xFF, 0xFE}: SubheaderColumnList,
}

// ClassifySignature classifies a subheader's signature bytes, which are
// either 4 bytes (32-bit format) or 8 bytes (64-bit format) long.
func ClassifySignature(sig []byte) SubheaderKind {
	switch len(sig) {
	case 8:
		var key [8]byte
		copy(key[:], sig)
		if kind, ok := signatures64[key]; ok {
			return kind
		}
	case 4:
		var key [4]byte
		copy(key[:], sig)
		if kind, ok := signatures32[key]; ok {
			return kind
		}
	}

	return SubheaderUnknown
}
