// Package generate builds the C header that embeds the firmware's images.
//
// For every asset the external converter is run, its EBF output compressed and
// rendered as a `const uint8_t` array. The header is only written once every
// asset has gone through; any failure aborts the whole batch.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/assets"
	"github.com/dargueta/ebfpack/utilities/compression"
	"github.com/dargueta/ebfpack/utilities/hexlit"
)

const (
	// DefaultIntermediateExt is the extension of the converter's output.
	DefaultIntermediateExt = ".ebf8"
	// DefaultGuard is the include guard of the generated header.
	DefaultGuard = "__IMAGES_H"
)

var guardPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var headerTemplate = template.Must(template.New("header").Parse(
	`{{if .Preamble}}{{.Preamble}}


{{end}}#ifndef {{.Guard}}
#define {{.Guard}}
{{range .Declarations}}
const uint8_t {{.Name}}[] = {
    {{.Data}}
};
{{end}}
#endif // {{.Guard}}
`))

type declaration struct {
	Name string
	Data string
}

type headerData struct {
	Preamble     string
	Guard        string
	Declarations []declaration
}

// Generator renders asset lists into header files. Use [New] to get one with
// the defaults filled in.
type Generator struct {
	Converter       Converter
	IntermediateExt string
	Guard           string
	// Preamble is copied verbatim before the include guard, typically a license
	// comment. Trailing newlines are normalized.
	Preamble  string
	Formatter hexlit.Formatter
	Logger    *log.Logger
}

// New returns a Generator using converter and logging to logger. A nil logger
// discards everything.
func New(converter Converter, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Generator{
		Converter:       converter,
		IntermediateExt: DefaultIntermediateExt,
		Guard:           DefaultGuard,
		Formatter:       hexlit.DefaultFormatter,
		Logger:          logger,
	}
}

// Render converts and compresses every asset in order and returns the complete
// header text. Nothing is written to disk apart from what the converter
// produces.
func (g *Generator) Render(ctx context.Context, list []assets.Asset) ([]byte, error) {
	if err := assets.Validate(list); err != nil {
		return nil, err
	}
	if !guardPattern.MatchString(g.Guard) {
		return nil, ebfpack.ErrInvalidName.WithMessage(fmt.Sprintf("include guard %q", g.Guard))
	}

	data := headerData{
		Preamble: strings.TrimRight(g.Preamble, "\r\n"),
		Guard:    g.Guard,
	}

	for _, asset := range list {
		compressed, err := g.compressAsset(ctx, asset)
		if err != nil {
			return nil, err
		}
		data.Declarations = append(data.Declarations, declaration{
			Name: asset.Name,
			Data: g.Formatter.Format(compressed),
		})
	}

	var output bytes.Buffer
	if err := headerTemplate.Execute(&output, data); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func (g *Generator) compressAsset(ctx context.Context, asset assets.Asset) ([]byte, error) {
	g.Logger.Printf("Converting %s from %q", asset.Name, asset.Path)
	if err := g.Converter.Convert(ctx, asset.Path); err != nil {
		return nil, err
	}

	intermediatePath := asset.IntermediatePath(g.IntermediateExt)
	raw, err := os.ReadFile(intermediatePath)
	if err != nil {
		return nil, ebfpack.ErrIO.Wrap(err).WithMessage(
			fmt.Sprintf("reading converter output for %s", asset.Name))
	}

	compressed, err := compression.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", intermediatePath, err)
	}

	g.Logger.Printf(
		"Compressed %s: %d -> %d bytes (%.1f%%)",
		asset.Name,
		len(raw),
		len(compressed),
		100*float64(len(compressed))/float64(len(raw)))
	return compressed, nil
}

// Run renders the header for list, writes it to outputPath and then removes the
// converter's temporary files for those assets.
func (g *Generator) Run(ctx context.Context, list []assets.Asset, outputPath string) error {
	header, err := g.Render(ctx, list)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, header, 0o644); err != nil {
		return ebfpack.ErrIO.Wrap(err)
	}
	g.Logger.Printf("Wrote %d bytes to %q", len(header), outputPath)

	return CleanupAssets(list, g.Logger)
}
