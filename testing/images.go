package testing

import (
	"io"
	"testing"

	"github.com/dargueta/ebfpack/ebf"
	"github.com/dargueta/ebfpack/utilities/compression"
	"github.com/dargueta/ebfpack/utilities/hexlit"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadAsset takes a compressed EBF blob and returns a stream over the expanded
// pixel data, header excluded.
//
//   - Writes to the stream do not affect `compressedAsset`.
//   - While the stream can be written to, its size is fixed to `width * height`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadAsset(t *testing.T, compressedAsset []byte) (ebf.Header, io.ReadWriteSeeker) {
	require.GreaterOrEqual(
		t, len(compressedAsset), compression.HeaderSize, "compressed asset has no header")
	require.NoError(t, compression.Verify(compressedAsset), "compressed asset is malformed")

	decoded, err := ebf.Decode(compressedAsset)
	require.NoError(t, err)

	return decoded.Header, bytesextra.NewReadWriteSeeker(decoded.Pix)
}

// LoadAssetFromText is like [LoadAsset] but takes the initializer text of a
// generated declaration instead of raw bytes.
func LoadAssetFromText(t *testing.T, text string) (ebf.Header, io.ReadWriteSeeker) {
	compressedAsset, err := hexlit.Extract(text)
	require.NoError(t, err)
	return LoadAsset(t, compressedAsset)
}
