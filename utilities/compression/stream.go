package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/ebfpack"
)

// countingWriter tracks how many bytes have gone to the underlying writer, so
// the stream functions can report a size even when they fail halfway.
type countingWriter struct {
	w            io.Writer
	bytesWritten int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.bytesWritten += int64(n)
	if err != nil {
		return n, ebfpack.ErrIO.Wrap(err).WithMessage("failed to write to output")
	}
	return n, nil
}

func readHeader(input io.Reader) ([]byte, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(input, header)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errShortInput(n)
		}
		return nil, ebfpack.ErrIO.Wrap(err).WithMessage("error reading header")
	}
	return header, nil
}

// CompressSentinelRLE reads bytes from the input and writes compressed data to
// the output until the input is exhausted. The return value is the number of
// bytes written, only valid if no error occurred.
//
// The output is byte-for-byte identical to [Compress] on the same data.
func CompressSentinelRLE(input io.Reader, output io.Writer) (int64, error) {
	header, err := readHeader(input)
	if err != nil {
		return 0, err
	}

	sink := &countingWriter{w: output}
	if _, err := sink.Write(header); err != nil {
		return sink.bytesWritten, err
	}

	grouper := NewRunGrouper(input)

	// Whatever is left of a run after an escape pair borrowed its first byte.
	pending := InvalidRun

	for {
		run := pending
		pending = InvalidRun

		if run.RunLength < 1 {
			run, err = grouper.GetNextRun()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return sink.bytesWritten, nil
				}
				return sink.bytesWritten, ebfpack.ErrIO.Wrap(err).WithMessage("error reading input")
			}
		}

		for run.RunLength > 0 {
			chunk := run.RunLength
			if chunk > MaxRunLength {
				chunk = MaxRunLength
			}

			if isEncodableRun(run.Byte, chunk) {
				if _, err := sink.Write([]byte{Sentinel, Sentinel, byte(chunk), run.Byte}); err != nil {
					return sink.bytesWritten, err
				}
				run.RunLength -= chunk
				continue
			}

			if run.Byte != Sentinel {
				if _, err := sink.Write([]byte{run.Byte}); err != nil {
					return sink.bytesWritten, err
				}
				run.RunLength--
				continue
			}

			// A single sentinel left over. It takes the first byte of the next
			// run as its escape partner.
			next, err := grouper.GetNextRun()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					return sink.bytesWritten, ebfpack.ErrIO.Wrap(err).WithMessage("error reading input")
				}
				_, err = sink.Write([]byte{Sentinel})
				return sink.bytesWritten, err
			}

			if _, err := sink.Write([]byte{Sentinel, next.Byte}); err != nil {
				return sink.bytesWritten, err
			}
			next.RunLength--
			pending = next
			run.RunLength = 0
		}
	}
}

// DecompressSentinelRLE is the streaming counterpart of [Decompress]. The return
// value is the number of bytes written, including the header.
func DecompressSentinelRLE(input io.Reader, output io.Writer) (int64, error) {
	header, err := readHeader(input)
	if err != nil {
		return 0, err
	}

	sink := &countingWriter{w: output}
	if _, err := sink.Write(header); err != nil {
		return sink.bytesWritten, err
	}

	source := bufio.NewReader(input)
	offset := int64(HeaderSize)

	for {
		currentByte, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sink.bytesWritten, nil
			}
			return sink.bytesWritten, ebfpack.ErrIO.Wrap(err).WithMessage("error reading input")
		}

		isToken := false
		if currentByte == Sentinel {
			next, err := source.Peek(1)
			if err != nil && !errors.Is(err, io.EOF) {
				return sink.bytesWritten, ebfpack.ErrIO.Wrap(err).WithMessage("error reading input")
			}
			isToken = len(next) == 1 && next[0] == Sentinel
		}

		if !isToken {
			if _, err := sink.Write([]byte{currentByte}); err != nil {
				return sink.bytesWritten, err
			}
			offset++
			continue
		}

		var token [3]byte
		n, err := io.ReadFull(source, token[:])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return sink.bytesWritten, ebfpack.ErrTruncatedRun.Wrap(io.ErrUnexpectedEOF).WithMessage(
					fmt.Sprintf("token at offset %d needs 4 bytes, %d left", offset, n+1))
			}
			return sink.bytesWritten, ebfpack.ErrIO.Wrap(err).WithMessage("error reading input")
		}

		// token[0] is the second sentinel.
		runLength := int(token[1])
		if runLength == 0 {
			return sink.bytesWritten, ebfpack.ErrInvalidRunLength.WithMessage(
				fmt.Sprintf("zero-length run at offset %d", offset))
		}

		if _, err := sink.Write(bytes.Repeat([]byte{token[2]}, runLength)); err != nil {
			return sink.bytesWritten, err
		}
		offset += 4
	}
}
