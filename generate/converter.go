package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dargueta/ebfpack"
)

// Converter turns a source image into its intermediate EBF file, written next
// to the image. See [assets.Asset.IntermediatePath] for where it must end up.
type Converter interface {
	Convert(ctx context.Context, imagePath string) error
}

// Default command used to run the external converter.
const (
	DefaultInterpreter = "python"
	DefaultScript      = "EBF-convert.py"
)

// ExecConverter runs the converter as `<Interpreter> <Script> <image>` and waits
// for it to finish.
type ExecConverter struct {
	Interpreter string
	Script      string
	// Dir is the working directory of the subprocess. Empty means the current
	// directory.
	Dir string
	// Stdout receives the converter's standard output. Nil discards it.
	Stdout io.Writer
}

// Convert implements [Converter]. A non-zero exit status is reported as
// [ebfpack.ErrConverterFailed], with whatever the converter wrote to stderr.
func (c ExecConverter) Convert(ctx context.Context, imagePath string) error {
	interpreter := c.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	script := c.Script
	if script == "" {
		script = DefaultScript
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, interpreter, script, imagePath)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := imagePath
		if details := strings.TrimSpace(stderr.String()); details != "" {
			message = fmt.Sprintf("%s: %s", imagePath, details)
		}
		return ebfpack.ErrConverterFailed.Wrap(err).WithMessage(message)
	}
	return nil
}
