package hexlit

import (
	"os"

	"github.com/dargueta/ebfpack"
)

// ConvertFile reads the text file at inputPath, extracts its hex literals and
// writes the bytes to outputPath. With truncate set, wide literals keep their
// low byte as in [ExtractTruncating]; otherwise they are an error.
//
// The output file is not created if reading or extraction fails. The returned
// int is the number of bytes written.
func ConvertFile(inputPath, outputPath string, truncate bool) (int, error) {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, ebfpack.ErrIO.Wrap(err)
	}

	var data []byte
	if truncate {
		data = ExtractTruncating(string(text))
	} else {
		data, err = Extract(string(text))
		if err != nil {
			return 0, err
		}
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return 0, ebfpack.ErrIO.Wrap(err)
	}
	return len(data), nil
}
