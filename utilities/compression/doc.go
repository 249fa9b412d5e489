// Package compression implements the sentinel run-length encoding used for
// EBF image assets embedded in the firmware.
//
// An EBF blob starts with an 8-byte header (dimensions and format) that is
// always copied verbatim. The body that follows is scanned left to right. A run
// of identical bytes is replaced by a four-byte token:
//
//	AA AA <length> <value>
//
// Runs are encoded when they are at least 5 bytes long, or at least 2 bytes
// long when the value is the sentinel 0xAA itself. Anything shorter is copied
// as-is, with one twist: a literal 0xAA is always emitted together with the
// byte that follows it. Since two sentinels in a row would have formed a run,
// that following byte is never 0xAA, so a decoder that sees 0xAA followed by
// anything other than 0xAA can copy both bytes unchanged.
//
// For example, with the header omitted:
//
//	41 41 41 AA 42 42 42 42 42 42 42 42 42 42
//	41 41 41 AA 42 AA AA 09 42
//
// Note how the literal 0xAA swallows the first 0x42 of the following run, which
// is why the run token only covers nine bytes. The firmware decoder relies on
// this exact layout, so the encoder reproduces it rather than splitting the run
// more cleverly.
//
// Run lengths are a single byte, so runs longer than 255 bytes are split into
// several tokens.
package compression

// Parameters of the encoding.
const (
	// HeaderSize is the number of leading bytes copied without compression.
	HeaderSize = 8
	// Sentinel marks the start of a run token.
	Sentinel = 0xAA
	// MaxRunLength is the longest run a single token can describe.
	MaxRunLength = 255
	// MinRunLength is the shortest run of a non-sentinel byte worth encoding.
	// A token is four bytes, so anything shorter would grow the output.
	MinRunLength = 5
	// MinSentinelRunLength is the shortest run of sentinel bytes that gets
	// encoded as a token.
	MinSentinelRunLength = 2
)

// minRunLengthFor returns the smallest run of value that is encoded as a token.
func minRunLengthFor(value byte) int {
	if value == Sentinel {
		return MinSentinelRunLength
	}
	return MinRunLength
}

func isEncodableRun(value byte, runLength int) bool {
	return runLength >= minRunLengthFor(value)
}
