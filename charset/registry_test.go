package charset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
)

func TestByteToNameKnownAndUnknown(t *testing.T) {
	require.Equal(t, "UTF-8", ByteToName(20))
	require.Equal(t, "ISO-8859-1", ByteToName(29))
	require.Equal(t, "CP437", ByteToName(41))
	require.Equal(t, "WINDOWS-1252", ByteToName(62))
	require.Equal(t, "EUC-JP", ByteToName(73))

	// Bytes outside every documented range fall back to the default name.
	require.Equal(t, defaultName, ByteToName(0))
	require.Equal(t, defaultName, ByteToName(200))
}

func TestNameToEncodingFallsBackForUnresolvableNames(t *testing.T) {
	require.Equal(t, charmap.Windows1252, NameToEncoding("CP857"))
	require.Equal(t, charmap.Windows1252, NameToEncoding("ISO-2022-JP"))
	require.Equal(t, charmap.Windows1252, NameToEncoding("NOT-A-REAL-CODEPAGE"))
}

func TestNameToEncodingIsCaseInsensitive(t *testing.T) {
	require.Equal(t, NameToEncoding("windows-1252"), NameToEncoding("WINDOWS-1252"))
}

func TestDecoderRoundTripsASCII(t *testing.T) {
	dec := NewDecoder("US-ASCII")
	require.Equal(t, "hello", dec.Decode([]byte("hello")))
}

func TestDecoderEmptyInputIsEmptyString(t *testing.T) {
	dec := NewDecoder("WINDOWS-1252")
	require.Equal(t, "", dec.Decode(nil))
}
