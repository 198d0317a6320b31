package section

import (
	"github.com/brightwell/sas7bdat/endian"
	"github.com/brightwell/sas7bdat/errs"
)

// Page is a decoded view over one page-length slice of a SAS7BDAT file. It
// owns no memory; Bytes aliases the caller's buffer for the page's
// lifetime.
type Page struct {
	Bytes           []byte
	Type            uint16
	BlockCount      int
	SubheaderCount  int
	bitOffset       int
	integerWidth    int
}

// ParsePage reads the page-header triple at the architecture's page bit
// offset and returns a Page describing it. buf must be exactly page_length
// bytes.
func ParsePage(buf []byte, bitOffset, integerWidth int, eng endian.EndianEngine) (*Page, error) {
	if len(buf) < bitOffset+6 {
		return nil, errs.ErrInvalidPageSize
	}

	pageType := eng.Uint16(buf[bitOffset : bitOffset+2])
	blockCount := eng.Uint16(buf[bitOffset+2 : bitOffset+4])
	subheaderCount := eng.Uint16(buf[bitOffset+4 : bitOffset+6])

	return &Page{
		Bytes:          buf,
		Type:           pageType,
		BlockCount:     int(blockCount),
		SubheaderCount: int(subheaderCount),
		bitOffset:      bitOffset,
		integerWidth:   integerWidth,
	}, nil
}

// IsData reports whether this page carries packed, uncompressed-width rows.
func (p *Page) IsData() bool { return p.Type&PageTypeData != 0 }

// IsMix reports whether this page carries both subheaders and a packed row
// region.
func (p *Page) IsMix() bool { return p.Type&PageTypeMix != 0 }

// IsMeta reports whether this page is a pure metadata page (no packed rows).
func (p *Page) IsMeta() bool { return p.Type == PageTypeMeta }

// IsAmd reports whether this page's primary type is Amd.
func (p *Page) IsAmd() bool { return p.Type&PageTypeAmd != 0 }

// IsMetadataContinuation reports whether this page's primary type is
// MetadataContinuation.
func (p *Page) IsMetadataContinuation() bool { return p.Type&PageTypeMetadataContinuation != 0 }

// CarriesSubheaders reports whether the subheader decoder should walk this
// page's descriptor table (spec.md §4.7).
func (p *Page) CarriesSubheaders() bool {
	return p.IsMeta() || p.IsMix() || p.IsAmd() || p.IsMetadataContinuation()
}

// subheaderDescriptorsStart is the byte offset of the first subheader
// descriptor within the page.
func (p *Page) subheaderDescriptorsStart() int { return p.bitOffset + 8 }

// SubheaderDescriptor is one entry in a page's subheader descriptor table.
type SubheaderDescriptor struct {
	Offset           int
	Length           int
	CompressionFlag  byte
	SubtypeFlag      byte
	Signature        []byte
	Kind             SubheaderKind
}

// Descriptors parses this page's subheader descriptor table and classifies
// each entry's signature, skipping truncated or zero-length entries.
func (p *Page) Descriptors(eng endian.EndianEngine) ([]SubheaderDescriptor, error) {
	w := p.integerWidth
	descSize := 3 * w
	start := p.subheaderDescriptorsStart()

	out := make([]SubheaderDescriptor, 0, p.SubheaderCount)
	for i := 0; i < p.SubheaderCount; i++ {
		base := start + i*descSize
		if base+descSize+2 > len(p.Bytes) {
			return out, errs.ErrInvalidSubheaderOffset
		}

		off, err := endian.ReadUint(p.Bytes[base:], w, eng)
		if err != nil {
			return out, err
		}
		length, err := endian.ReadUint(p.Bytes[base+w:], w, eng)
		if err != nil {
			return out, err
		}
		compFlag := p.Bytes[base+2*w]
		subFlag := p.Bytes[base+2*w+1]

		d := SubheaderDescriptor{
			Offset:          int(off),
			Length:          int(length),
			CompressionFlag: compFlag,
			SubtypeFlag:     subFlag,
		}

		if d.Length == 0 || d.CompressionFlag == CompressFlagTruncated {
			continue
		}

		if d.Offset < 0 || d.Offset+w > len(p.Bytes) {
			return out, errs.ErrInvalidSubheaderOffset
		}

		d.Signature = p.Bytes[d.Offset : d.Offset+w]
		d.Kind = ClassifySignature(d.Signature)
		out = append(out, d)
	}

	return out, nil
}

// IsEmbeddedDataCandidate reports whether a descriptor matches the
// "embedded data row" predicate for meta pages (spec.md §3 Invariants,
// §4.8): the file is compressed, the flags match, and the signature
// doesn't classify as a known metadata subheader.
func (d *SubheaderDescriptor) IsEmbeddedDataCandidate(fileCompressed bool) bool {
	if !fileCompressed {
		return false
	}
	if d.CompressionFlag != 0 && d.CompressionFlag != CompressFlagCompressed {
		return false
	}
	if d.SubtypeFlag != SubtypeCompressed {
		return false
	}

	return d.Kind == SubheaderUnknown
}
