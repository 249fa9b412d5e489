package hexlit_test

import (
	"math/rand"
	"testing"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/utilities/hexlit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract__Declaration(t *testing.T) {
	result, err := hexlit.Extract("const uint8_t x[] = {0x01, 0x0a, 0xFF};")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x0a, 0xff}, result)
}

func TestExtract__Basic(t *testing.T) {
	tests := []struct {
		Name     string
		Text     string
		Expected []byte
	}{
		{"empty", "", []byte{}},
		{"no literals", "int main(void) { return 0; }", []byte{}},
		{"single digit", "0x7", []byte{0x07}},
		{"leading zeros", "0x00ff 0x0000", []byte{0xff, 0x00}},
		{"mixed case digits", "0xaB 0xCd", []byte{0xab, 0xcd}},
		{"uppercase prefix ignored", "0X12 0x34", []byte{0x34}},
		{"greedy digits", "0x010x02", []byte{0x10}},
		{"inside identifiers", "foo_0x12_bar", []byte{0x12}},
		{
			"multi line",
			"const uint8_t a[] = {\n    0x01, 0x02,\n    0x03\n};\n// 0x04\n",
			[]byte{1, 2, 3, 4},
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				result, err := hexlit.Extract(test.Text)
				require.NoError(t, err)
				assert.Equal(t, test.Expected, result)
			},
		)
	}
}

func TestExtract__Overflow(t *testing.T) {
	_, err := hexlit.Extract("0x01, 0xABC, 0x02")
	require.Error(t, err)
	assert.ErrorIs(t, err, ebfpack.ErrLiteralOverflow)
	assert.Contains(t, err.Error(), `"0xABC" at offset 6`)

	_, err = hexlit.Extract("0x100")
	assert.ErrorIs(t, err, ebfpack.ErrLiteralOverflow)

	_, err = hexlit.Extract("0x123456789abcdef0123")
	assert.ErrorIs(t, err, ebfpack.ErrLiteralOverflow)
}

func TestExtractTruncating(t *testing.T) {
	assert.Equal(
		t,
		[]byte{0x01, 0xbc, 0x00, 0x23},
		hexlit.ExtractTruncating("0x01, 0xABC, 0x100, 0x123456789abcdef0123"))
	assert.Equal(t, []byte{}, hexlit.ExtractTruncating("nothing here"))
}

func TestFormatExtract__RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, size := range []int{0, 1, 11, 12, 13, 256, 4099} {
		data := make([]byte, size)
		rng.Read(data)

		result, err := hexlit.Extract(hexlit.Format(data))
		require.NoError(t, err)
		assert.Equal(t, data, result, "size %d", size)
		assert.Equal(t, data, hexlit.ExtractTruncating(hexlit.Format(data)), "size %d", size)
	}
}
