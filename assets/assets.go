// Package assets describes the list of images converted into firmware
// declarations.
package assets

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dargueta/ebfpack"
	"github.com/gocarina/gocsv"
)

// Asset pairs a C variable name with the source image it is generated from.
type Asset struct {
	Name string `csv:"name"`
	Path string `csv:"path"`
}

// IntermediatePath returns the path of the file the converter writes for this
// asset: the image path with its extension replaced by ext.
func (a Asset) IntermediatePath(ext string) string {
	return strings.TrimSuffix(a.Path, filepath.Ext(a.Path)) + ext
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

//go:embed default-assets.csv
var defaultManifest string

// Default returns the firmware's built-in asset list. Paths are relative to the
// working directory.
func Default() []Asset {
	list, err := ReadManifest(strings.NewReader(defaultManifest))
	if err != nil {
		panic(fmt.Errorf("embedded asset manifest is invalid: %w", err))
	}
	return list
}

// ReadManifest parses a manifest: a `|`-separated CSV file with a `name|path`
// header row. Lines starting with `#` are ignored. Order is preserved.
func ReadManifest(r io.Reader) ([]Asset, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = '|'
	csvReader.Comment = '#'
	csvReader.TrimLeadingSpace = true

	var rows []Asset
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, ebfpack.ErrInvalidManifest.Wrap(err)
	}

	for i := range rows {
		rows[i].Name = strings.TrimSpace(rows[i].Name)
		rows[i].Path = strings.TrimSpace(rows[i].Path)
	}

	if err := Validate(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadManifest reads the manifest at path. Relative image paths in it are taken
// to be relative to the manifest's directory.
func LoadManifest(path string) ([]Asset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ebfpack.ErrIO.Wrap(err)
	}
	defer file.Close()

	list, err := ReadManifest(file)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	for i := range list {
		if !filepath.IsAbs(list[i].Path) {
			list[i].Path = filepath.Join(baseDir, list[i].Path)
		}
	}
	return list, nil
}

// Validate checks that the list is usable: non-empty, every name a valid C
// identifier used once, every path set.
func Validate(list []Asset) error {
	if len(list) == 0 {
		return ebfpack.ErrInvalidManifest.WithMessage("no assets listed")
	}

	seen := make(map[string]int, len(list))
	for i, asset := range list {
		if !identifierPattern.MatchString(asset.Name) {
			return ebfpack.ErrInvalidName.WithMessage(
				fmt.Sprintf("asset %d: %q", i+1, asset.Name))
		}
		if first, exists := seen[asset.Name]; exists {
			return ebfpack.ErrDuplicateAsset.WithMessage(
				fmt.Sprintf("%q on entries %d and %d", asset.Name, first+1, i+1))
		}
		if asset.Path == "" {
			return ebfpack.ErrInvalidManifest.WithMessage(
				fmt.Sprintf("asset %q has no path", asset.Name))
		}
		seen[asset.Name] = i
	}
	return nil
}
