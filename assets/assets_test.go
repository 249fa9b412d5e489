package assets_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	list := assets.Default()
	require.Len(t, list, 6)
	assert.Equal(t, assets.Asset{Name: "ESPeccy_logo", Path: "ESPeccy-logo-cropped.png"}, list[0])
	assert.Equal(t, "Layout_ZX81", list[5].Name)
}

func TestReadManifest(t *testing.T) {
	text := "# comment\nname|path\nlogo | art/logo.png\nkbd|kbd.png\n"
	list, err := assets.ReadManifest(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]assets.Asset{{Name: "logo", Path: "art/logo.png"}, {Name: "kbd", Path: "kbd.png"}},
		list,
	)
}

func TestReadManifest__Errors(t *testing.T) {
	tests := []struct {
		Name     string
		Text     string
		Expected error
	}{
		{"empty", "name|path\n", ebfpack.ErrInvalidManifest},
		{"bad identifier", "name|path\n1logo|logo.png\n", ebfpack.ErrInvalidName},
		{"identifier with dash", "name|path\nmy-logo|logo.png\n", ebfpack.ErrInvalidName},
		{"duplicate", "name|path\nlogo|a.png\nlogo|b.png\n", ebfpack.ErrDuplicateAsset},
		{"missing path", "name|path\nlogo|\n", ebfpack.ErrInvalidManifest},
		{"ragged row", "name|path\nlogo|a.png|extra\n", ebfpack.ErrInvalidManifest},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				_, err := assets.ReadManifest(strings.NewReader(test.Text))
				assert.ErrorIs(t, err, test.Expected)
			},
		)
	}
}

func TestLoadManifest__RelativePaths(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "assets.csv")
	absolute := filepath.Join(dir, "elsewhere", "b.png")
	require.NoError(
		t,
		os.WriteFile(manifestPath, []byte("name|path\na|art/a.png\nb|"+absolute+"\n"), 0o644),
	)

	list, err := assets.LoadManifest(manifestPath)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, filepath.Join(dir, "art", "a.png"), list[0].Path)
	assert.Equal(t, absolute, list[1].Path)
}

func TestLoadManifest__Missing(t *testing.T) {
	_, err := assets.LoadManifest(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ebfpack.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIntermediatePath(t *testing.T) {
	asset := assets.Asset{Name: "logo", Path: "art/my.logo.png"}
	assert.Equal(t, "art/my.logo.ebf8", asset.IntermediatePath(".ebf8"))

	asset = assets.Asset{Name: "raw", Path: "raw"}
	assert.Equal(t, "raw.ebf8", asset.IntermediatePath(".ebf8"))
}
