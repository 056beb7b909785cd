// Package config provides YAML/JSONC configuration loading, defaults,
// layered overrides and validation for gitstamp.
package config

import (
	"time"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// Config is the root configuration for gitstamp. All optional fields are
// pointers to support merge semantics during configuration building.
type Config struct {
	Major       *int64                 `yaml:"major" json:"major,omitempty"`
	Minor       *int64                 `yaml:"minor" json:"minor,omitempty"`
	Patch       *int64                 `yaml:"patch" json:"patch,omitempty"`
	MajorFormat *semver.CalendarFormat `yaml:"major-format" json:"major-format,omitempty"`
	MinorFormat *semver.CalendarFormat `yaml:"minor-format" json:"minor-format,omitempty"`
	PatchFormat *semver.CalendarFormat `yaml:"patch-format" json:"patch-format,omitempty"`
	PreRelease  *string                `yaml:"pre-release" json:"pre-release,omitempty"`
	MetaData    *string                `yaml:"metadata" json:"metadata,omitempty"`
	Date        *Date                  `yaml:"date" json:"date,omitempty"`
	TagPattern  *string                `yaml:"tag-pattern" json:"tag-pattern,omitempty"`
	VersionInfo VersionInfoConfig      `yaml:"version-info" json:"version-info"`
}

// VersionInfoConfig selects the encoding and file name of the version-info
// file.
type VersionInfoConfig struct {
	Formatter *string `yaml:"formatter" json:"formatter,omitempty"`
	FileName  *string `yaml:"file-name" json:"file-name,omitempty"`
}

// Date is a calendar date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

// DateLayout is the layout of Date values.
const DateLayout = time.DateOnly

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// MarshalText renders the date as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format(DateLayout)), nil
}

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}
