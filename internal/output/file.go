package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// DefaultOutputDir is where version-info files are written unless another
// directory is given.
var DefaultOutputDir = filepath.Join("build", "resources", "main")

// DefaultFileName returns "version.<ext>" for the formatter.
func DefaultFileName(f Formatter) string {
	return "version." + f.Extension()
}

// WriteFile renders info with f and writes it to dir. Only the base name of
// fileName is used; a blank fileName falls back to DefaultFileName. The
// directory is created if needed. It returns the written path.
func WriteFile(dir, fileName string, f Formatter, info versioninfo.VersionInfo) (string, error) {
	name := filepath.Base(fileName)
	if fileName == "" || name == "." || name == string(filepath.Separator) {
		name = DefaultFileName(f)
	}

	data, err := f.Format(info)
	if err != nil {
		return "", fmt.Errorf("formatting version info: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing version info: %w", err)
	}
	return path, nil
}
