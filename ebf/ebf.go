/*
Package ebf reads and writes the EBF image blobs the firmware draws on screen.

An EBF blob is an 8-byte header followed by one byte per pixel, row by row. The
header holds a 4-byte format tag written by the converter, then the width and
height as little-endian 16-bit values. Blobs embedded in the firmware have
their pixel data compressed with the sentinel RLE from the compression
package; the header is never compressed.
*/
package ebf

import (
	"encoding/binary"
	"fmt"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/utilities/compression"
)

// HeaderSize is the size of the uncompressed header in bytes.
const HeaderSize = compression.HeaderSize

// Header is the fixed-size prefix of every EBF blob.
type Header struct {
	// Format is the converter's tag. It is not interpreted.
	Format [4]byte
	Width  uint16
	Height uint16
}

// ParseHeader decodes the header at the start of data. Only the first
// [HeaderSize] bytes are looked at.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ebfpack.ErrInputTooShort.WithMessage(
			fmt.Sprintf("got %d bytes, need at least %d", len(data), HeaderSize))
	}

	var header Header
	copy(header.Format[:], data[:4])
	header.Width = binary.LittleEndian.Uint16(data[4:6])
	header.Height = binary.LittleEndian.Uint16(data[6:8])
	return header, nil
}

// MarshalBinary encodes the header into its 8-byte form.
func (h Header) MarshalBinary() ([]byte, error) {
	data := make([]byte, HeaderSize)
	copy(data[:4], h.Format[:])
	binary.LittleEndian.PutUint16(data[4:6], h.Width)
	binary.LittleEndian.PutUint16(data[6:8], h.Height)
	return data, nil
}

// PixelCount returns the number of pixel bytes that follow the header.
func (h Header) PixelCount() int {
	return int(h.Width) * int(h.Height)
}

// Image is a fully expanded EBF blob.
type Image struct {
	Header
	// Pix holds the pixels row by row, Width bytes per row.
	Pix []byte
}

// At returns the pixel at (x, y), or 0 if the point is outside the image.
func (m *Image) At(x, y int) byte {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return 0
	}
	return m.Pix[y*int(m.Width)+x]
}

// Decode expands a compressed EBF blob. The pixel data must expand to exactly
// Width*Height bytes, otherwise [ebfpack.ErrSizeMismatch] is returned.
func Decode(compressed []byte) (*Image, error) {
	header, err := ParseHeader(compressed)
	if err != nil {
		return nil, err
	}

	expanded, err := compression.Decompress(compressed)
	if err != nil {
		return nil, err
	}

	pixels := expanded[HeaderSize:]
	if len(pixels) != header.PixelCount() {
		return nil, ebfpack.ErrSizeMismatch.WithMessage(
			fmt.Sprintf(
				"%dx%d image needs %d pixels, got %d",
				header.Width,
				header.Height,
				header.PixelCount(),
				len(pixels)))
	}

	return &Image{Header: header, Pix: pixels}, nil
}

// Encode builds the compressed blob for m, ready to embed in firmware.
func Encode(m *Image) ([]byte, error) {
	if len(m.Pix) != m.PixelCount() {
		return nil, ebfpack.ErrSizeMismatch.WithMessage(
			fmt.Sprintf(
				"%dx%d image needs %d pixels, got %d",
				m.Width,
				m.Height,
				m.PixelCount(),
				len(m.Pix)))
	}

	raw, _ := m.Header.MarshalBinary()
	return compression.Compress(append(raw, m.Pix...))
}
