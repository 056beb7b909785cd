package config

import (
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/output"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// DefaultTagPattern matches every tag.
const DefaultTagPattern = "*"

// CreateDefaultConfiguration returns a Config with all default values
// populated. The calendar formats, metadata, date and file name stay unset:
// metadata is derived from version control, the date defaults to today and
// the file name to "version.<ext>" of the selected formatter.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Major:      int64Ptr(semver.DefaultMajor),
		Minor:      int64Ptr(semver.DefaultMinor),
		Patch:      int64Ptr(semver.DefaultPatch),
		PreRelease: stringPtr(semver.DefaultPreRelease),
		TagPattern: stringPtr(DefaultTagPattern),
		VersionInfo: VersionInfoConfig{
			Formatter: stringPtr(output.DefaultFormatter),
		},
	}
}
