package compression

import (
	"bytes"
	"fmt"

	"github.com/dargueta/ebfpack"
)

// Compress encodes data with the sentinel run-length encoding and returns the
// result in a new slice. The first [HeaderSize] bytes are copied unchanged.
//
// Data shorter than the header is rejected with [ebfpack.ErrInputTooShort].
func Compress(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, errShortInput(len(data))
	}

	compressed := make([]byte, 0, len(data))
	compressed = append(compressed, data[:HeaderSize]...)

	i := HeaderSize
	for i < len(data) {
		value := data[i]
		runLength := measureRun(data[i:])

		if isEncodableRun(value, runLength) {
			compressed = append(compressed, Sentinel, Sentinel, byte(runLength), value)
			i += runLength
			continue
		}

		compressed = append(compressed, value)
		if value == Sentinel && i+1 < len(data) {
			// Escape pair: the next byte goes out with the sentinel no matter
			// what it is, even if it starts a run of its own.
			compressed = append(compressed, data[i+1])
			i += 2
		} else {
			i++
		}
	}

	return compressed, nil
}

// Decompress expands data produced by [Compress], or by the firmware asset
// generator, back to the original bytes.
//
// Only the sequence AA AA starts a run token. Any other byte, including a lone
// sentinel, is copied as a literal, which is how the device reads the stream.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, errShortInput(len(data))
	}

	expanded := make([]byte, 0, len(data)*2)
	expanded = append(expanded, data[:HeaderSize]...)

	i := HeaderSize
	for i < len(data) {
		if data[i] != Sentinel || i+1 >= len(data) || data[i+1] != Sentinel {
			expanded = append(expanded, data[i])
			i++
			continue
		}

		if i+3 >= len(data) {
			return nil, ebfpack.ErrTruncatedRun.WithMessage(
				fmt.Sprintf("token at offset %d needs 4 bytes, %d left", i, len(data)-i))
		}

		runLength := int(data[i+2])
		if runLength == 0 {
			return nil, ebfpack.ErrInvalidRunLength.WithMessage(
				fmt.Sprintf("zero-length run at offset %d", i))
		}

		expanded = append(expanded, bytes.Repeat([]byte{data[i+3]}, runLength)...)
		i += 4
	}

	return expanded, nil
}

// measureRun returns the number of times data[0] repeats at the start of data,
// capped at [MaxRunLength]. data must not be empty.
func measureRun(data []byte) int {
	runLength := 1
	for runLength < len(data) && runLength < MaxRunLength && data[runLength] == data[0] {
		runLength++
	}
	return runLength
}

func errShortInput(size int) ebfpack.DomainError {
	return ebfpack.ErrInputTooShort.WithMessage(
		fmt.Sprintf("got %d bytes, need at least %d", size, HeaderSize))
}
