package hexlit

import "strings"

const (
	// BytesPerLine is the default number of literals on each line.
	BytesPerLine = 12
	// Indent is the default indentation for continuation lines.
	Indent = "    "
)

const hexDigits = "0123456789abcdef"

// Formatter renders byte slices as comma-separated hex literals. The zero value
// is not usable; start from [DefaultFormatter].
type Formatter struct {
	// BytesPerLine is the number of literals per line. Must be positive.
	BytesPerLine int
	// Indent is written after each line break. The first line is never
	// indented; callers put it wherever the initializer starts.
	Indent string
}

// DefaultFormatter matches the layout of the generated firmware headers.
var DefaultFormatter = Formatter{BytesPerLine: BytesPerLine, Indent: Indent}

// Format renders data using f's layout. An empty slice gives an empty string.
func (f Formatter) Format(data []byte) string {
	perLine := f.BytesPerLine
	if perLine < 1 {
		perLine = BytesPerLine
	}

	var builder strings.Builder
	// "0x??, " per byte plus the line breaks.
	builder.Grow(len(data)*6 + (len(data)/perLine)*(len(f.Indent)+1))

	for i, b := range data {
		if i > 0 {
			if i%perLine == 0 {
				builder.WriteString(",\n")
				builder.WriteString(f.Indent)
			} else {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("0x")
		builder.WriteByte(hexDigits[b>>4])
		builder.WriteByte(hexDigits[b&0x0f])
	}
	return builder.String()
}

// Format renders data with [DefaultFormatter].
func Format(data []byte) string {
	return DefaultFormatter.Format(data)
}
