package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brightwell/sas7bdat/endian"
)

const bit32BitOffset = 16 // format.Bit32.PageBitOffset(), avoiding a format import here

func TestParsePageClassification(t *testing.T) {
	eng := endian.GetLittleEndianEngine()

	buf := make([]byte, 64)
	eng.PutUint16(buf[bit32BitOffset:], PageTypeMix)
	eng.PutUint16(buf[bit32BitOffset+2:], 7)  // block_count
	eng.PutUint16(buf[bit32BitOffset+4:], 2)  // subheader_count

	p, err := ParsePage(buf, bit32BitOffset, 4, eng)
	require.NoError(t, err)
	require.True(t, p.IsMix())
	require.False(t, p.IsData())
	require.False(t, p.IsMeta())
	require.True(t, p.CarriesSubheaders())
	require.Equal(t, 7, p.BlockCount)
	require.Equal(t, 2, p.SubheaderCount)
}

func TestParsePageTooShort(t *testing.T) {
	_, err := ParsePage(make([]byte, 4), bit32BitOffset, 4, endian.GetLittleEndianEngine())
	require.Error(t, err)
}

func TestPageIsMetaOnlyForExactZeroType(t *testing.T) {
	eng := endian.GetLittleEndianEngine()

	buf := make([]byte, 32)
	eng.PutUint16(buf[bit32BitOffset:], PageTypeMeta)
	p, err := ParsePage(buf, bit32BitOffset, 4, eng)
	require.NoError(t, err)
	require.True(t, p.IsMeta())
	require.True(t, p.CarriesSubheaders())

	buf2 := make([]byte, 32)
	eng.PutUint16(buf2[bit32BitOffset:], PageTypeData)
	p2, err := ParsePage(buf2, bit32BitOffset, 4, eng)
	require.NoError(t, err)
	require.False(t, p2.IsMeta())
	require.True(t, p2.IsData())
	require.False(t, p2.CarriesSubheaders())
}

// buildMetaPage lays out a Bit32 meta page with one RowSize-signature
// subheader descriptor, so Descriptors() has something real to classify.
func buildMetaPage(eng endian.EndianEngine) []byte {
	const (
		w         = 4
		descStart = bit32BitOffset + 8
		subOffset = 100
		subLength = 4
	)

	buf := make([]byte, 200)
	eng.PutUint16(buf[bit32BitOffset:], PageTypeMeta)
	eng.PutUint16(buf[bit32BitOffset+4:], 1) // subheader_count = 1

	eng.PutUint32(buf[descStart:], subOffset)
	eng.PutUint32(buf[descStart+w:], subLength)
	buf[descStart+2*w] = 0   // compression flag: not truncated
	buf[descStart+2*w+1] = 0 // subtype flag

	copy(buf[subOffset:], []byte{0xF7, 0xF7, 0xF7, 0xF7})

	return buf
}

func TestPageDescriptorsClassifiesSignature(t *testing.T) {
	eng := endian.GetLittleEndianEngine()
	buf := buildMetaPage(eng)

	p, err := ParsePage(buf, bit32BitOffset, 4, eng)
	require.NoError(t, err)

	descs, err := p.Descriptors(eng)
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.Equal(t, SubheaderRowSize, descs[0].Kind)
	require.Equal(t, 100, descs[0].Offset)
	require.Equal(t, 4, descs[0].Length)
}

func TestIsEmbeddedDataCandidate(t *testing.T) {
	d := &SubheaderDescriptor{
		CompressionFlag: CompressFlagCompressed,
		SubtypeFlag:     SubtypeCompressed,
		Kind:            SubheaderUnknown,
	}
	require.True(t, d.IsEmbeddedDataCandidate(true))
	require.False(t, d.IsEmbeddedDataCandidate(false))

	classified := &SubheaderDescriptor{
		CompressionFlag: CompressFlagCompressed,
		SubtypeFlag:     SubtypeCompressed,
		Kind:            SubheaderRowSize,
	}
	require.False(t, classified.IsEmbeddedDataCandidate(true))
}
