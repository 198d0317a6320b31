package section

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/brightwell/sas7bdat/charset"
	"github.com/brightwell/sas7bdat/endian"
	"github.com/brightwell/sas7bdat/format"
)

// RawColumn is the positional column record assembled from the ColumnName,
// ColumnAttributes, and FormatAndLabel subheaders (spec.md §4.7.4). It
// carries no logical type or decoder binding; that happens one layer up,
// once decode.FieldDecoder can be bound without this package importing it.
type RawColumn struct {
	Index   int
	Name    string
	Label   string
	Format  string
	Offset  int
	Length  int
	Storage format.StorageKind
}

// textPool is the ordered arena of decoded text blocks harvested from
// ColumnText subheaders (spec.md's "text pool").
type textPool struct {
	blocks []string
}

func (tp *textPool) append(s string) { tp.blocks = append(tp.blocks, s) }

// substring extracts a bounded, trimmed substring of pool entry idx.
func (tp *textPool) substring(idx, charOffset, charLength int) string {
	if idx < 0 || idx >= len(tp.blocks) {
		return ""
	}

	s := tp.blocks[idx]
	if charOffset < 0 || charOffset >= len(s) {
		return ""
	}

	end := charOffset + charLength
	if end > len(s) {
		end = len(s)
	}
	if end < charOffset {
		return ""
	}

	return strings.TrimSpace(s[charOffset:end])
}

// MetadataParser walks successive pages' subheader graphs, accumulating row
// geometry, compression, creator identity, and column descriptors (spec.md
// §4.7). It is a state machine only in that the first ColumnText subheader
// is special.
type MetadataParser struct {
	header *FileHeader
	dec    *charset.Decoder

	pool          textPool
	seenFirstText bool

	Compression  format.Compression
	Creator      string
	CreatorProc  string

	RowLength        int
	RowCount         int
	ColCountP1       int
	ColCountP2       int
	MixPageRowCount  int
	ColumnCount      int
	Lcs, Lcp         int

	names   []string
	formats []string
	labels  []string
	attrs   []rawAttr

	fileCompressed bool
}

type rawAttr struct {
	offset  int
	length  int
	storage format.StorageKind
}

// NewMetadataParser returns a parser bound to a parsed file header.
func NewMetadataParser(h *FileHeader) *MetadataParser {
	return &MetadataParser{
		header: h,
		dec:    charset.NewDecoder(h.EncodingName),
	}
}

// ProcessPage walks one page's subheader descriptor table (if any) and
// reports whether metadata extraction is complete: true when a pure data
// page or a fully-processed mix page was seen.
func (mp *MetadataParser) ProcessPage(p *Page) (done bool, err error) {
	if p.IsData() {
		return true, nil
	}

	if !p.CarriesSubheaders() {
		return false, nil
	}

	descs, err := p.Descriptors(mp.header.Endian)
	if err != nil {
		return false, err
	}

	for i := range descs {
		d := &descs[i]
		if d.Length == 0 || d.CompressionFlag == CompressFlagTruncated {
			continue
		}

		if err := mp.handle(p, d); err != nil {
			return false, err
		}
	}

	if p.IsMix() {
		if mp.MixPageRowCount == 0 {
			mp.computeMixPageRowCount(p)
		}

		return true, nil
	}

	return false, nil
}

func (mp *MetadataParser) computeMixPageRowCount(p *Page) {
	w := mp.header.IntegerWidth()
	H := p.subheaderDescriptorsStart() + p.SubheaderCount*(3*w)
	if rem := H % 8; rem != 0 {
		H += 8 - rem
	}

	dataArea := mp.header.PageLength - H
	if mp.RowLength <= 0 || dataArea <= 0 {
		mp.MixPageRowCount = 0
		return
	}

	mp.MixPageRowCount = dataArea / mp.RowLength
}

func (mp *MetadataParser) handle(p *Page, d *SubheaderDescriptor) error {
	w := mp.header.IntegerWidth()
	buf := p.Bytes
	off := d.Offset

	switch d.Kind {
	case SubheaderRowSize:
		lcsOff, lcpOff := RowSizeLcsOffsetBit32, RowSizeLcpOffsetBit32
		if mp.header.Architecture.IntegerWidth() == 8 {
			lcsOff, lcpOff = RowSizeLcsOffsetBit64, RowSizeLcpOffsetBit64
		}

		mp.Lcs = int(readU16At(buf, off+lcsOff, mp.header.Endian))
		mp.Lcp = int(readU16At(buf, off+lcpOff, mp.header.Endian))

		mp.RowLength = readIntAt(buf, off+RowSizeRowLengthWords*w, w, mp.header.Endian)
		mp.RowCount = readIntAt(buf, off+RowSizeRowCountWords*w, w, mp.header.Endian)
		mp.ColCountP1 = readIntAt(buf, off+RowSizeColCountP1Words*w, w, mp.header.Endian)
		mp.ColCountP2 = readIntAt(buf, off+RowSizeColCountP2Words*w, w, mp.header.Endian)
		mp.MixPageRowCount = readIntAt(buf, off+RowSizeMixPageRowCntWords*w, w, mp.header.Endian)

	case SubheaderColumnSize:
		mp.ColumnCount = readIntAt(buf, off+w, w, mp.header.Endian)

	case SubheaderColumnText:
		blockLen := int(readU16At(buf, off+w, mp.header.Endian))
		raw := sliceBounded(buf, off+w, blockLen)
		trimmed := endian.TrimFixedText(raw)
		mp.pool.append(mp.dec.Decode(trimmed))

		if !mp.seenFirstText {
			mp.seenFirstText = true
			mp.detectCompressionAndCreator(buf, off, raw)
		}

	case SubheaderColumnName:
		mp.parseColumnNames(buf, off, d.Length, w)

	case SubheaderColumnAttributes:
		mp.parseColumnAttributes(buf, off, d.Length, w)

	case SubheaderFormatAndLabel:
		mp.parseFormatAndLabel(buf, off, w)

	case SubheaderColumnList, SubheaderSubheaderCounts, SubheaderUnknown:
		// Structurally recognized (or genuinely unknown); no column
		// metadata to extract.
	}

	return nil
}

func (mp *MetadataParser) detectCompressionAndCreator(buf []byte, off int, raw []byte) {
	if bytes.Contains(raw, []byte("SASYZCRL")) {
		mp.Compression = format.CompressionRLE
	} else if bytes.Contains(raw, []byte("SASYZCR2")) {
		mp.Compression = format.CompressionRDC
	}
	mp.fileCompressed = mp.Compression != format.CompressionNone

	C := off + 16
	if mp.header.Architecture == format.Bit64 {
		C = off + 20
	}

	probe := endian.TrimFixedText(sliceBounded(buf, C, 8))
	switch {
	case len(probe) == 0:
		mp.Lcs = 0
		mp.CreatorProc = mp.dec.Decode(endian.TrimFixedText(sliceBounded(buf, C+16, mp.Lcp)))
	case string(probe) == "SASYZCRL":
		mp.CreatorProc = mp.dec.Decode(endian.TrimFixedText(sliceBounded(buf, C+24, mp.Lcp)))
	case mp.Lcs > 0:
		mp.Lcp = 0
		mp.Creator = mp.dec.Decode(endian.TrimFixedText(sliceBounded(buf, C, mp.Lcs)))
	}
}

func (mp *MetadataParser) parseColumnNames(buf []byte, off, length, w int) {
	entryStart := off + w + 8
	limit := off + length - 12 - w

	for entryStart <= limit {
		idx := int(readU16At(buf, entryStart, mp.header.Endian))
		nameOffset := int(readU16At(buf, entryStart+2, mp.header.Endian))
		nameLength := int(readU16At(buf, entryStart+4, mp.header.Endian))

		mp.names = append(mp.names, mp.pool.substring(idx, nameOffset, nameLength))
		entryStart += 8
	}
}

func (mp *MetadataParser) parseColumnAttributes(buf []byte, off, length, w int) {
	entrySize := w + 8
	entryStart := off + w + 8
	limit := off + length - 12 - w

	for entryStart <= limit {
		dataOffset := readIntAt(buf, entryStart, w, mp.header.Endian)
		dataLength := readIntAt(buf, entryStart+w, 4, mp.header.Endian)
		storageByte := buf[entryStart+w+6]

		storage := format.StorageString
		if storageByte == 1 {
			storage = format.StorageNumber
		}

		mp.attrs = append(mp.attrs, rawAttr{offset: dataOffset, length: dataLength, storage: storage})
		entryStart += entrySize
	}
}

func (mp *MetadataParser) parseFormatAndLabel(buf []byte, off, w int) {
	base := off + 3*w

	formatIdx := int(readU16At(buf, base+22, mp.header.Endian))
	formatOffset := int(readU16At(buf, base+24, mp.header.Endian))
	formatLength := int(readU16At(buf, base+26, mp.header.Endian))
	labelIdx := int(readU16At(buf, base+28, mp.header.Endian))
	labelOffset := int(readU16At(buf, base+30, mp.header.Endian))
	labelLength := int(readU16At(buf, base+32, mp.header.Endian))

	mp.formats = append(mp.formats, mp.pool.substring(formatIdx, formatOffset, formatLength))
	mp.labels = append(mp.labels, mp.pool.substring(labelIdx, labelOffset, labelLength))
}

// FileCompressed reports whether a compression scheme was detected in the
// first ColumnText subheader.
func (mp *MetadataParser) FileCompressed() bool { return mp.fileCompressed }

// Finish assembles the accumulated positional data into column_count
// RawColumn records, applying the defaults of spec.md §4.7.4 for any
// missing positional entry.
func (mp *MetadataParser) Finish() []RawColumn {
	cols := make([]RawColumn, mp.ColumnCount)
	for i := range cols {
		cols[i] = RawColumn{
			Index: i,
			Name:  "Column" + strconv.Itoa(i+1),
		}

		if i < len(mp.names) {
			cols[i].Name = mp.names[i]
		}
		if i < len(mp.labels) {
			cols[i].Label = mp.labels[i]
		}
		if i < len(mp.formats) {
			cols[i].Format = mp.formats[i]
		}
		if i < len(mp.attrs) {
			cols[i].Offset = mp.attrs[i].offset
			cols[i].Length = mp.attrs[i].length
			cols[i].Storage = mp.attrs[i].storage
		}
	}

	return cols
}

func readU16At(buf []byte, off int, eng endian.EndianEngine) uint16 {
	if off < 0 || off+2 > len(buf) {
		return 0
	}

	return eng.Uint16(buf[off : off+2])
}

func readIntAt(buf []byte, off, width int, eng endian.EndianEngine) int {
	v, err := endian.ReadUint(sliceBounded(buf, off, width), width, eng)
	if err != nil {
		return 0
	}

	return int(v)
}

func sliceBounded(buf []byte, off, length int) []byte {
	if off < 0 || off >= len(buf) || length <= 0 {
		return nil
	}

	end := off + length
	if end > len(buf) {
		end = len(buf)
	}

	return buf[off:end]
}

