// Package section implements the binary layout of a SAS7BDAT file: its
// fixed header, page headers, and the subheader graph that carries column
// metadata. It mirrors arloliu-mebo's section package in spirit (a
// self-describing header parsed by fixed byte offsets) but targets a
// different wire format entirely.
package section

import (
	"math"
	"time"

	"github.com/brightwell/sas7bdat/charset"
	"github.com/brightwell/sas7bdat/endian"
	"github.com/brightwell/sas7bdat/errs"
	"github.com/brightwell/sas7bdat/format"
)

// sasEpoch is the reference instant for SAS numeric date/datetime encoding.
var sasEpoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// SasEpoch returns the SAS epoch instant (1960-01-01T00:00:00Z).
func SasEpoch() time.Time { return sasEpoch }

// FileHeader is the parsed fixed header of a SAS7BDAT file.
type FileHeader struct {
	Architecture format.Architecture
	Endian       endian.EndianEngine
	Platform     format.Platform
	EncodingName string

	DatasetName string
	FileType    string
	DateCreated time.Time
	DateModified time.Time

	HeaderLength int
	PageLength   int
	PageCount    int

	SasRelease    string
	SasServerType string
	OsType        string
	OsName        string

	// a1, a2 are the auxiliary byte offsets used to locate fields that
	// shift position depending on architecture (spec.md §4.6 steps 2-3).
	a1, a2 int
}

// IntegerWidth is the width in bytes of in-page offsets/lengths/counts for
// this header's architecture.
func (h *FileHeader) IntegerWidth() int { return h.Architecture.IntegerWidth() }

// PageBitOffset is the byte offset within a page at which the page-header
// triple begins, for this header's architecture.
func (h *FileHeader) PageBitOffset() int { return h.Architecture.PageBitOffset() }

// total is A1 + A2, the combined auxiliary offset used past byte 216.
func (h *FileHeader) total() int { return h.a1 + h.a2 }

// PeekHeaderLength reads just enough of the fixed 288-byte prefix to learn
// the full header_length, so the caller can extend its read buffer before
// the full ParseHeader call (spec.md §4.6 step 7's two-phase read).
func PeekHeaderLength(prefix []byte) (int, error) {
	if len(prefix) < FixedHeaderPrefixSize {
		return 0, errs.ErrInvalidHeaderSize
	}

	if [32]byte(prefix[:32]) != Magic {
		return 0, errs.ErrBadMagic
	}

	a1 := 0
	if prefix[OffsetA1Byte] == '3' {
		a1 = 4
	}

	eng := endian.GetLittleEndianEngine()
	if prefix[OffsetEndianByte] != 0x01 {
		eng = endian.GetBigEndianEngine()
	}

	hlenOff := OffsetHeaderLength + a1
	hlen, err := endian.ReadUint(prefix[hlenOff:hlenOff+4], 4, eng)
	if err != nil {
		return 0, err
	}

	return int(hlen), nil
}

// ParseHeader decodes a full header buffer (at least HeaderLength bytes,
// already extended past the 288-byte prefix if required) into a FileHeader.
// buf must start at byte 0 of the file.
func ParseHeader(buf []byte) (*FileHeader, error) {
	if len(buf) < FixedHeaderPrefixSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	if [32]byte(buf[:32]) != Magic {
		return nil, errs.ErrBadMagic
	}

	h := &FileHeader{}

	if buf[OffsetArchitectureByte] == '3' {
		h.Architecture = format.Bit64
		h.a2 = 4
	} else {
		h.Architecture = format.Bit32
		h.a2 = 0
	}

	if buf[OffsetA1Byte] == '3' {
		h.a1 = 4
	}

	if buf[OffsetEndianByte] == 0x01 {
		h.Endian = endian.GetLittleEndianEngine()
	} else {
		h.Endian = endian.GetBigEndianEngine()
	}

	switch buf[OffsetPlatformByte] {
	case '1':
		h.Platform = format.PlatformUnix
	case '2':
		h.Platform = format.PlatformWindows
	default:
		h.Platform = format.PlatformUnknown
	}

	h.EncodingName = charset.ByteToName(buf[OffsetEncodingByte])
	dec := charset.NewDecoder(h.EncodingName)

	hlenOff := OffsetHeaderLength + h.a1
	if len(buf) < hlenOff+4 {
		return nil, errs.ErrInvalidHeaderSize
	}
	hlen, err := endian.ReadUint(buf[hlenOff:], 4, h.Endian)
	if err != nil {
		return nil, err
	}
	h.HeaderLength = int(hlen)

	if h.HeaderLength < FixedHeaderPrefixSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	if len(buf) < h.HeaderLength {
		return nil, errs.ErrTruncated
	}

	h.DatasetName = dec.Decode(endian.TrimFixedText(buf[OffsetDatasetName : OffsetDatasetName+LengthDatasetName]))
	h.FileType = dec.Decode(endian.TrimFixedText(buf[OffsetFileType : OffsetFileType+LengthFileType]))

	dc, err := endian.ReadFloat64(buf[OffsetDateCreated+h.a1:], h.Endian)
	if err != nil {
		return nil, err
	}
	h.DateCreated = decodeSasSeconds(dc)

	dm, err := endian.ReadFloat64(buf[OffsetDateModified+h.a1:], h.Endian)
	if err != nil {
		return nil, err
	}
	h.DateModified = decodeSasSeconds(dm)

	pl, err := endian.ReadUint(buf[OffsetPageLength+h.a1:], 4, h.Endian)
	if err != nil {
		return nil, err
	}
	h.PageLength = int(pl)

	pc, err := endian.ReadUint(buf[OffsetPageCount+h.a1:], 4, h.Endian)
	if err != nil {
		return nil, err
	}
	h.PageCount = int(pc)

	total := h.total()
	h.SasRelease = dec.Decode(endian.TrimFixedText(buf[OffsetSasRelease+total : OffsetSasRelease+total+LengthSasRelease]))
	h.SasServerType = dec.Decode(endian.TrimFixedText(buf[OffsetSasServerType+total : OffsetSasServerType+total+LengthSasServerType]))
	h.OsType = dec.Decode(endian.TrimFixedText(buf[OffsetOsType+total : OffsetOsType+total+LengthOsType]))

	if buf[OffsetOsNameFlag+total] != 0 {
		h.OsName = dec.Decode(endian.TrimFixedText(buf[OffsetOsNamePrimary+total : OffsetOsNamePrimary+total+LengthOsName]))
	} else {
		h.OsName = dec.Decode(endian.TrimFixedText(buf[OffsetOsNameAlt+total : OffsetOsNameAlt+total+LengthOsName]))
	}

	return h, nil
}

// decodeSasSeconds converts a count of seconds since the SAS epoch to a UTC
// instant. Out-of-range values collapse to the zero time; callers treat
// the zero time as "unknown" rather than propagating an error, matching
// the missing-value-not-error posture of spec.md §4.4.
func decodeSasSeconds(seconds float64) time.Time {
	if seconds != seconds { // NaN
		return time.Time{}
	}
	if math.Abs(seconds) > float64(math.MaxInt64)/float64(time.Second) {
		return time.Time{}
	}

	return sasEpoch.Add(time.Duration(seconds * float64(time.Second)))
}
