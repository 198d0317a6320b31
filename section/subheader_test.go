package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brightwell/sas7bdat/endian"
	"github.com/brightwell/sas7bdat/format"
)

func TestTextPoolSubstringTrimsAndBounds(t *testing.T) {
	var tp textPool
	tp.append("  idscore  ")

	require.Equal(t, "idscore", tp.substring(0, 0, 11))
	require.Equal(t, "", tp.substring(-1, 0, 2))
	require.Equal(t, "", tp.substring(1, 0, 2))
	require.Equal(t, "", tp.substring(0, 100, 2))
	require.Equal(t, "", tp.substring(0, 5, -1))
}

func newBit32Header() *FileHeader {
	return &FileHeader{
		Architecture: format.Bit32,
		Endian:       endian.GetLittleEndianEngine(),
		EncodingName: "",
	}
}

// TestHandleRowSizeAndColumnSize exercises the two subheaders that carry
// row/column geometry, calling handle() directly so the test doesn't need a
// full page descriptor table.
func TestHandleRowSizeAndColumnSize(t *testing.T) {
	eng := endian.GetLittleEndianEngine()
	header := newBit32Header()
	mp := NewMetadataParser(header)
	w := 4

	rowSizeBody := make([]byte, 400)
	copy(rowSizeBody[:4], []byte{0xF7, 0xF7, 0xF7, 0xF7})
	eng.PutUint32(rowSizeBody[RowSizeRowLengthWords*w:], 12)
	eng.PutUint32(rowSizeBody[RowSizeRowCountWords*w:], 3)
	eng.PutUint32(rowSizeBody[RowSizeColCountP1Words*w:], 1)
	eng.PutUint32(rowSizeBody[RowSizeColCountP2Words*w:], 1)
	eng.PutUint32(rowSizeBody[RowSizeMixPageRowCntWords*w:], 0)
	eng.PutUint16(rowSizeBody[RowSizeLcsOffsetBit32:], 5)
	eng.PutUint16(rowSizeBody[RowSizeLcpOffsetBit32:], 9)

	page := &Page{Bytes: rowSizeBody, bitOffset: 16, integerWidth: w}
	d := &SubheaderDescriptor{Kind: SubheaderRowSize, Offset: 0, Length: len(rowSizeBody)}
	require.NoError(t, mp.handle(page, d))

	require.Equal(t, 12, mp.RowLength)
	require.Equal(t, 3, mp.RowCount)
	require.Equal(t, 1, mp.ColCountP1)
	require.Equal(t, 1, mp.ColCountP2)
	require.Equal(t, 5, mp.Lcs)
	require.Equal(t, 9, mp.Lcp)

	colSizeBody := make([]byte, 16)
	copy(colSizeBody[:4], []byte{0xF6, 0xF6, 0xF6, 0xF6})
	eng.PutUint32(colSizeBody[w:], 2)

	page2 := &Page{Bytes: colSizeBody, bitOffset: 16, integerWidth: w}
	d2 := &SubheaderDescriptor{Kind: SubheaderColumnSize, Offset: 0, Length: len(colSizeBody)}
	require.NoError(t, mp.handle(page2, d2))

	require.Equal(t, 2, mp.ColumnCount)
}

// TestHandleColumnTextDetectsRLECompression covers the first-ColumnText
// compression/creator detection path (spec.md §4.7.3).
func TestHandleColumnTextDetectsRLECompression(t *testing.T) {
	eng := endian.GetLittleEndianEngine()
	header := newBit32Header()
	mp := NewMetadataParser(header)

	// body = signature(4, unused by handle) + blockLen(2) + text. The text
	// region starts right at the blockLen field itself (off+w), so the
	// creator-signature probe at off+16 must land past blockLen's 2 bytes.
	body := make([]byte, 64)
	blockLen := uint16(40)
	eng.PutUint16(body[4:], blockLen)
	copy(body[16:], []byte("SASYZCRL"))

	page := &Page{Bytes: body, bitOffset: 16, integerWidth: 4}
	d := &SubheaderDescriptor{Kind: SubheaderColumnText, Offset: 0, Length: len(body)}
	require.NoError(t, mp.handle(page, d))

	require.Equal(t, format.CompressionRLE, mp.Compression)
	require.True(t, mp.FileCompressed())
	require.Len(t, mp.pool.blocks, 1)
}

// TestHandleColumnNameResolvesAgainstTextPool builds a two-entry ColumnName
// subheader against a manually-seeded text pool, bypassing ColumnText's
// byte layout entirely.
func TestHandleColumnNameResolvesAgainstTextPool(t *testing.T) {
	eng := endian.GetLittleEndianEngine()
	header := newBit32Header()
	mp := NewMetadataParser(header)
	mp.pool.append("idscore")

	w := 4
	const off = 0
	body := make([]byte, 40)

	entry1 := off + w + 8 // 12
	eng.PutUint16(body[entry1:], 0)   // text pool index
	eng.PutUint16(body[entry1+2:], 0) // char offset
	eng.PutUint16(body[entry1+4:], 2) // char length -> "id"

	entry2 := entry1 + 8 // 20
	eng.PutUint16(body[entry2:], 0)
	eng.PutUint16(body[entry2+2:], 2)
	eng.PutUint16(body[entry2+4:], 5) // -> "score"

	page := &Page{Bytes: body, bitOffset: 16, integerWidth: w}
	d := &SubheaderDescriptor{Kind: SubheaderColumnName, Offset: off, Length: 36}
	require.NoError(t, mp.handle(page, d))

	require.Equal(t, []string{"id", "score"}, mp.names)
}

// TestHandleColumnAttributesParsesOffsetLengthStorage builds a two-entry
// ColumnAttributes subheader.
func TestHandleColumnAttributesParsesOffsetLengthStorage(t *testing.T) {
	eng := endian.GetLittleEndianEngine()
	header := newBit32Header()
	mp := NewMetadataParser(header)

	w := 4
	const off = 0
	body := make([]byte, 40)

	entry1 := off + w + 8 // 12
	eng.PutUint32(body[entry1:], 0)  // data offset
	eng.PutUint32(body[entry1+4:], 8) // data length
	body[entry1+w+6] = 1             // storage byte: number

	entry2 := entry1 + (w + 8) // 24
	eng.PutUint32(body[entry2:], 8)
	eng.PutUint32(body[entry2+4:], 4)
	body[entry2+w+6] = 2 // storage byte: not 1 -> string

	page := &Page{Bytes: body, bitOffset: 16, integerWidth: w}
	d := &SubheaderDescriptor{Kind: SubheaderColumnAttributes, Offset: off, Length: 40}
	require.NoError(t, mp.handle(page, d))

	require.Len(t, mp.attrs, 2)
	require.Equal(t, rawAttr{offset: 0, length: 8, storage: format.StorageNumber}, mp.attrs[0])
	require.Equal(t, rawAttr{offset: 8, length: 4, storage: format.StorageString}, mp.attrs[1])
}

// TestHandleFormatAndLabelResolvesAgainstTextPool covers the
// FormatAndLabel subheader's fixed-offset fields.
func TestHandleFormatAndLabelResolvesAgainstTextPool(t *testing.T) {
	eng := endian.GetLittleEndianEngine()
	header := newBit32Header()
	mp := NewMetadataParser(header)
	mp.pool.append("MyFormatMyLabel")

	w := 4
	const off = 0
	body := make([]byte, 50)
	base := off + 3*w // 12

	eng.PutUint16(body[base+22:], 0) // format text pool index
	eng.PutUint16(body[base+24:], 0) // format char offset
	eng.PutUint16(body[base+26:], 8) // format char length -> "MyFormat"
	eng.PutUint16(body[base+28:], 0) // label text pool index
	eng.PutUint16(body[base+30:], 8) // label char offset
	eng.PutUint16(body[base+32:], 7) // label char length -> "MyLabel"

	page := &Page{Bytes: body, bitOffset: 16, integerWidth: w}
	d := &SubheaderDescriptor{Kind: SubheaderFormatAndLabel, Offset: off, Length: 50}
	require.NoError(t, mp.handle(page, d))

	require.Equal(t, []string{"MyFormat"}, mp.formats)
	require.Equal(t, []string{"MyLabel"}, mp.labels)
}

func TestFinishAppliesDefaultsForMissingPositionalEntries(t *testing.T) {
	header := newBit32Header()
	mp := NewMetadataParser(header)
	mp.ColumnCount = 2
	mp.names = []string{"id"}
	mp.attrs = []rawAttr{{offset: 0, length: 8, storage: format.StorageNumber}}

	cols := mp.Finish()
	require.Len(t, cols, 2)

	require.Equal(t, "id", cols[0].Name)
	require.Equal(t, 0, cols[0].Offset)
	require.Equal(t, 8, cols[0].Length)
	require.Equal(t, format.StorageNumber, cols[0].Storage)

	require.Equal(t, "Column2", cols[1].Name)
	require.Equal(t, 0, cols[1].Offset)
	require.Equal(t, 0, cols[1].Length)
}

func TestProcessPageReturnsDoneForDataPage(t *testing.T) {
	header := newBit32Header()
	mp := NewMetadataParser(header)

	p := &Page{Type: PageTypeData, bitOffset: 16, integerWidth: 4}
	done, err := mp.ProcessPage(p)
	require.NoError(t, err)
	require.True(t, done)
}

func TestProcessPageSkipsPageWithoutSubheaders(t *testing.T) {
	header := newBit32Header()
	mp := NewMetadataParser(header)

	p := &Page{Type: PageTypeSpecial, bitOffset: 16, integerWidth: 4}
	done, err := mp.ProcessPage(p)
	require.NoError(t, err)
	require.False(t, done)
}

func TestProcessPageComputesMixPageRowCount(t *testing.T) {
	header := newBit32Header()
	header.PageLength = 100
	mp := NewMetadataParser(header)
	mp.RowLength = 10

	p := &Page{
		Bytes:          make([]byte, 100),
		Type:           PageTypeMix,
		SubheaderCount: 0,
		bitOffset:      16,
		integerWidth:   4,
	}

	done, err := mp.ProcessPage(p)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, 7, mp.MixPageRowCount) // (100 - 24) / 10
}
