package generate_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/assets"
	"github.com/dargueta/ebfpack/generate"
	ebftesting "github.com/dargueta/ebfpack/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter writes a canned EBF blob for each image instead of running the
// real converter, plus the PNG preview the real one leaves behind.
type fakeConverter struct {
	blobs map[string][]byte
	calls []string
	fail  map[string]error
}

func (c *fakeConverter) Convert(ctx context.Context, imagePath string) error {
	c.calls = append(c.calls, imagePath)
	if err, ok := c.fail[imagePath]; ok {
		return err
	}
	blob, ok := c.blobs[imagePath]
	if !ok {
		return nil
	}

	base := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	if err := os.WriteFile(base+".ebf8", blob, 0o644); err != nil {
		return err
	}
	return os.WriteFile(base+".ebf8.png", []byte("preview"), 0o644)
}

var tinyBlob = []byte{'E', 'B', 'F', '8', 2, 0, 2, 0, 1, 2, 3, 4}

func solidBlob(width, height int, color byte) []byte {
	blob := []byte{'E', 'B', 'F', '8', byte(width), 0, byte(height), 0}
	return append(blob, bytes.Repeat([]byte{color}, width*height)...)
}

func TestRender__Layout(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{{Name: "tiny", Path: filepath.Join(dir, "tiny.png")}}
	converter := &fakeConverter{blobs: map[string][]byte{list[0].Path: tinyBlob}}

	header, err := generate.New(converter, nil).Render(context.Background(), list)
	require.NoError(t, err)

	expected := "#ifndef __IMAGES_H\n" +
		"#define __IMAGES_H\n" +
		"\n" +
		"const uint8_t tiny[] = {\n" +
		"    0x45, 0x42, 0x46, 0x38, 0x02, 0x00, 0x02, 0x00, 0x01, 0x02, 0x03, 0x04\n" +
		"};\n" +
		"\n" +
		"#endif // __IMAGES_H\n"
	assert.Equal(t, expected, string(header))
}

func TestRender__PreambleAndGuard(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{{Name: "tiny", Path: filepath.Join(dir, "tiny.png")}}
	converter := &fakeConverter{blobs: map[string][]byte{list[0].Path: tinyBlob}}

	generator := generate.New(converter, nil)
	generator.Preamble = "/* license */\n\n"
	generator.Guard = "TINY_H"

	header, err := generator.Render(context.Background(), list)
	require.NoError(t, err)
	assert.True(
		t,
		strings.HasPrefix(string(header), "/* license */\n\n\n#ifndef TINY_H\n#define TINY_H\n"),
		"unexpected start: %q", header)
	assert.True(t, strings.HasSuffix(string(header), "};\n\n#endif // TINY_H\n"))

	generator.Guard = "not a guard"
	_, err = generator.Render(context.Background(), list)
	assert.ErrorIs(t, err, ebfpack.ErrInvalidName)
}

func TestRender__CompressedContents(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{
		{Name: "logo", Path: filepath.Join(dir, "logo.png")},
		{Name: "kbd", Path: filepath.Join(dir, "kbd.png")},
	}
	converter := &fakeConverter{blobs: map[string][]byte{
		list[0].Path: solidBlob(32, 4, 0xaa),
		list[1].Path: solidBlob(16, 16, 0x07),
	}}

	header, err := generate.New(converter, nil).Render(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, []string{list[0].Path, list[1].Path}, converter.calls, "assets out of order")

	text := string(header)
	logoStart := strings.Index(text, "const uint8_t logo[]")
	kbdStart := strings.Index(text, "const uint8_t kbd[]")
	require.True(t, logoStart >= 0 && kbdStart > logoStart, "declarations missing or out of order")

	header0, pixels := ebftesting.LoadAssetFromText(t, text[logoStart:kbdStart])
	assert.EqualValues(t, 32, header0.Width)
	assert.EqualValues(t, 4, header0.Height)
	decoded, err := io.ReadAll(pixels)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xaa}, 128), decoded)

	header1, pixels := ebftesting.LoadAssetFromText(t, text[kbdStart+len("const uint8_t kbd[]"):])
	assert.EqualValues(t, 16, header1.Width)
	decoded, err = io.ReadAll(pixels)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x07}, 256), decoded)
}

func TestRun__WritesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{{Name: "tiny", Path: filepath.Join(dir, "tiny.png")}}
	converter := &fakeConverter{blobs: map[string][]byte{list[0].Path: tinyBlob}}

	var logOutput bytes.Buffer
	outputPath := filepath.Join(dir, "images.h")
	err := generate.New(converter, log.New(&logOutput, "", 0)).Run(context.Background(), list, outputPath)
	require.NoError(t, err)

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "const uint8_t tiny[] = {")

	assert.NoFileExists(t, filepath.Join(dir, "tiny.ebf8"))
	assert.NoFileExists(t, filepath.Join(dir, "tiny.ebf8.png"))
	assert.Contains(t, logOutput.String(), "Converting tiny")
}

func TestRun__ConverterFailureAborts(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{
		{Name: "first", Path: filepath.Join(dir, "first.png")},
		{Name: "broken", Path: filepath.Join(dir, "broken.png")},
		{Name: "never", Path: filepath.Join(dir, "never.png")},
	}
	converterErr := ebfpack.ErrConverterFailed.WithMessage("exit status 1")
	converter := &fakeConverter{
		blobs: map[string][]byte{list[0].Path: tinyBlob, list[2].Path: tinyBlob},
		fail:  map[string]error{list[1].Path: converterErr},
	}

	outputPath := filepath.Join(dir, "images.h")
	err := generate.New(converter, nil).Run(context.Background(), list, outputPath)
	assert.ErrorIs(t, err, ebfpack.ErrConverterFailed)

	assert.Equal(t, []string{list[0].Path, list[1].Path}, converter.calls)
	assert.NoFileExists(t, outputPath, "partial header written")
	// No cleanup happens on failure.
	assert.FileExists(t, filepath.Join(dir, "first.ebf8"))
}

func TestRender__MissingIntermediate(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{{Name: "ghost", Path: filepath.Join(dir, "ghost.png")}}

	_, err := generate.New(&fakeConverter{}, nil).Render(context.Background(), list)
	assert.ErrorIs(t, err, ebfpack.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRender__IntermediateTooShort(t *testing.T) {
	dir := t.TempDir()
	list := []assets.Asset{{Name: "stub", Path: filepath.Join(dir, "stub.png")}}
	converter := &fakeConverter{blobs: map[string][]byte{list[0].Path: {1, 2, 3}}}

	_, err := generate.New(converter, nil).Render(context.Background(), list)
	assert.ErrorIs(t, err, ebfpack.ErrInputTooShort)
}

func TestRender__InvalidList(t *testing.T) {
	_, err := generate.New(&fakeConverter{}, nil).Render(context.Background(), nil)
	assert.ErrorIs(t, err, ebfpack.ErrInvalidManifest)
}

func TestExecConverter(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("`true` not available")
	}
	falsePath, err := exec.LookPath("false")
	if err != nil {
		t.Skip("`false` not available")
	}

	ok := generate.ExecConverter{Interpreter: truePath}
	assert.NoError(t, ok.Convert(context.Background(), "image.png"))

	failing := generate.ExecConverter{Interpreter: falsePath}
	err = failing.Convert(context.Background(), "image.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ebfpack.ErrConverterFailed)

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr), "exit error not wrapped: %v", err)
	assert.Contains(t, err.Error(), "image.png")
}
