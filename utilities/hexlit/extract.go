package hexlit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dargueta/ebfpack"
)

// literalPattern matches a lowercase `0x` prefix followed by hex digits in
// either case. Matches never overlap and are found left to right.
var literalPattern = regexp.MustCompile(`0x([0-9A-Fa-f]+)`)

// Extract returns one byte per hex literal found in text, in order of
// appearance.
//
// A literal may have any number of digits as long as its value fits in a byte,
// so `0x7` and `0x00ff` are fine. Anything larger, e.g. `0x1ff`, fails with
// [ebfpack.ErrLiteralOverflow]. Use [ExtractTruncating] to keep the low byte
// instead.
func Extract(text string) ([]byte, error) {
	matches := literalPattern.FindAllStringSubmatchIndex(text, -1)
	result := make([]byte, 0, len(matches))

	for _, match := range matches {
		digits := text[match[2]:match[3]]
		significant := strings.TrimLeft(digits, "0")
		if len(significant) > 2 {
			return nil, ebfpack.ErrLiteralOverflow.WithMessage(
				fmt.Sprintf("%q at offset %d", text[match[0]:match[1]], match[0]))
		}
		result = append(result, parseByte(significant))
	}
	return result, nil
}

// ExtractTruncating is like [Extract] but never fails: literals wider than a
// byte contribute their low 8 bits, so `0xABC` becomes 0xBC.
func ExtractTruncating(text string) []byte {
	matches := literalPattern.FindAllStringSubmatch(text, -1)
	result := make([]byte, 0, len(matches))

	for _, match := range matches {
		digits := match[1]
		if len(digits) > 2 {
			digits = digits[len(digits)-2:]
		}
		result = append(result, parseByte(digits))
	}
	return result
}

// parseByte converts at most two hex digits. An empty string is zero.
func parseByte(digits string) byte {
	if digits == "" {
		return 0
	}
	// The pattern guarantees valid digits, and two of them always fit.
	value, _ := strconv.ParseUint(digits, 16, 8)
	return byte(value)
}
