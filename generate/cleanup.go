package generate

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/assets"
	"github.com/hashicorp/go-multierror"
)

// TempSuffixes lists the file name endings of everything the converter leaves
// behind: the 8- and 4-bit EBF files and their PNG previews.
var TempSuffixes = []string{".ebf8", ".ebf4", ".ebf8.png", ".ebf4.png"}

func isTempFile(name string) bool {
	for _, suffix := range TempSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// CleanupAssets removes the temporary files generated for each asset in list.
// Files that don't exist are skipped. All removal failures are reported
// together.
func CleanupAssets(list []assets.Asset, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var result *multierror.Error
	for _, asset := range list {
		for _, suffix := range TempSuffixes {
			path := asset.IntermediatePath(suffix)
			err := os.Remove(path)
			switch {
			case err == nil:
				logger.Printf("Removed %q", path)
			case errors.Is(err, fs.ErrNotExist):
			default:
				result = multierror.Append(result, err)
			}
		}
	}
	if result != nil {
		return ebfpack.ErrIO.Wrap(result.ErrorOrNil())
	}
	return nil
}

// SweepTempFiles walks root and deletes every file that looks like converter
// output, whichever asset it belongs to. It returns the paths removed.
//
// The walk keeps going after a failure; all failures are reported together.
func SweepTempFiles(root string) ([]string, error) {
	var removed []string
	var result *multierror.Error

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			result = multierror.Append(result, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !isTempFile(entry.Name()) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		removed = append(removed, path)
		return nil
	})
	if walkErr != nil {
		result = multierror.Append(result, walkErr)
	}

	if result != nil {
		return removed, ebfpack.ErrIO.Wrap(result.ErrorOrNil())
	}
	return removed, nil
}
