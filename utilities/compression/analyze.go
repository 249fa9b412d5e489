package compression

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/ebfpack"
)

// ByteClass describes the role a byte plays in a compressed stream.
type ByteClass int

const (
	ClassHeader ByteClass = iota
	ClassLiteral
	// ClassEscapedSentinel is a literal 0xAA. It is followed by its escape
	// partner unless it is the last byte of the stream.
	ClassEscapedSentinel
	ClassEscapePartner
	ClassRunToken
)

func (c ByteClass) String() string {
	switch c {
	case ClassHeader:
		return "header"
	case ClassLiteral:
		return "literal"
	case ClassEscapedSentinel:
		return "escaped-sentinel"
	case ClassEscapePartner:
		return "escape-partner"
	case ClassRunToken:
		return "run-token"
	default:
		return fmt.Sprintf("ByteClass(%d)", int(c))
	}
}

// Report summarizes the structure of a compressed stream.
type Report struct {
	CompressedSize int
	DecodedSize    int
	// Literals is the number of body bytes copied as-is, escape pairs included.
	Literals int
	// Runs is the number of run tokens. SentinelRuns counts the subset whose
	// value is the sentinel.
	Runs         int
	SentinelRuns int
	// EscapedSentinels is the number of literal sentinel bytes.
	EscapedSentinels int

	runBytes     bitmap.Bitmap
	escapeBytes  bitmap.Bitmap
	partnerBytes bitmap.Bitmap
}

// Classify returns the role of the byte at offset in the analyzed stream.
// Offsets outside the stream panic.
func (r *Report) Classify(offset int) ByteClass {
	if offset < 0 || offset >= r.CompressedSize {
		panic(fmt.Sprintf("offset %d not in range [0, %d)", offset, r.CompressedSize))
	}
	switch {
	case offset < HeaderSize:
		return ClassHeader
	case r.runBytes.Get(offset):
		return ClassRunToken
	case r.escapeBytes.Get(offset):
		return ClassEscapedSentinel
	case r.partnerBytes.Get(offset):
		return ClassEscapePartner
	default:
		return ClassLiteral
	}
}

// Ratio returns the compressed size as a fraction of the decoded size.
func (r *Report) Ratio() float64 {
	if r.DecodedSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.DecodedSize)
}

// Analyze walks a compressed stream and reports how its bytes are used.
//
// Analyze is stricter than [Decompress]: it also rejects run tokens shorter than
// the encoder would ever emit (5, or 2 for the sentinel), since such a stream
// can't have come from [Compress].
func Analyze(data []byte) (Report, error) {
	if len(data) < HeaderSize {
		return Report{}, errShortInput(len(data))
	}

	report := Report{
		CompressedSize: len(data),
		DecodedSize:    HeaderSize,
		runBytes:       bitmap.New(len(data)),
		escapeBytes:    bitmap.New(len(data)),
		partnerBytes:   bitmap.New(len(data)),
	}

	i := HeaderSize
	for i < len(data) {
		if data[i] != Sentinel {
			report.Literals++
			report.DecodedSize++
			i++
			continue
		}

		if i+1 >= len(data) {
			// Trailing sentinel, there was nothing left to pair it with.
			report.escapeBytes.Set(i, true)
			report.EscapedSentinels++
			report.Literals++
			report.DecodedSize++
			break
		}

		if data[i+1] != Sentinel {
			report.escapeBytes.Set(i, true)
			report.partnerBytes.Set(i+1, true)
			report.EscapedSentinels++
			report.Literals += 2
			report.DecodedSize += 2
			i += 2
			continue
		}

		if i+3 >= len(data) {
			return report, ebfpack.ErrTruncatedRun.WithMessage(
				fmt.Sprintf("token at offset %d needs 4 bytes, %d left", i, len(data)-i))
		}

		runLength := int(data[i+2])
		value := data[i+3]
		if !isEncodableRun(value, runLength) {
			return report, ebfpack.ErrInvalidRunLength.WithMessage(
				fmt.Sprintf(
					"run of %#02x at offset %d has length %d, expected [%d, %d]",
					value,
					i,
					runLength,
					minRunLengthFor(value),
					MaxRunLength))
		}

		for j := i; j < i+4; j++ {
			report.runBytes.Set(j, true)
		}
		report.Runs++
		if value == Sentinel {
			report.SentinelRuns++
		}
		report.DecodedSize += runLength
		i += 4
	}

	return report, nil
}

// Verify checks that data is a well-formed compressed stream.
func Verify(data []byte) error {
	_, err := Analyze(data)
	return err
}
