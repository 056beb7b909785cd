package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/output"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.Major != nil {
		dst.Major = src.Major
	}
	if src.Minor != nil {
		dst.Minor = src.Minor
	}
	if src.Patch != nil {
		dst.Patch = src.Patch
	}
	if src.MajorFormat != nil {
		dst.MajorFormat = src.MajorFormat
	}
	if src.MinorFormat != nil {
		dst.MinorFormat = src.MinorFormat
	}
	if src.PatchFormat != nil {
		dst.PatchFormat = src.PatchFormat
	}
	if src.PreRelease != nil {
		dst.PreRelease = src.PreRelease
	}
	if src.MetaData != nil {
		dst.MetaData = src.MetaData
	}
	if src.Date != nil {
		dst.Date = src.Date
	}
	if src.TagPattern != nil {
		dst.TagPattern = src.TagPattern
	}
	if src.VersionInfo.Formatter != nil {
		dst.VersionInfo.Formatter = src.VersionInfo.Formatter
	}
	if src.VersionInfo.FileName != nil {
		dst.VersionInfo.FileName = src.VersionInfo.FileName
	}
}

// validate checks the configuration for errors by applying it to a
// throwaway version builder and resolving the formatter.
func validate(cfg *Config) error {
	if err := cfg.ApplyTo(semver.NewBuilder()); err != nil {
		return err
	}
	if _, err := cfg.Formatter(); err != nil {
		return err
	}
	if _, err := path.Match(cfg.Pattern(), ""); err != nil {
		return fmt.Errorf("%w: invalid tag-pattern %q: %w", semver.ErrInvalidArgument, cfg.Pattern(), err)
	}
	return nil
}

// ApplyTo sets every configured version field on b. A blank pre-release
// or metadata is left at the builder default.
func (c *Config) ApplyTo(b *semver.Builder) error {
	type setter struct {
		field string
		apply func() error
	}
	var setters []setter

	if c.Major != nil {
		setters = append(setters, setter{"major", func() error { return b.SetMajor(*c.Major) }})
	}
	if c.Minor != nil {
		setters = append(setters, setter{"minor", func() error { return b.SetMinor(*c.Minor) }})
	}
	if c.Patch != nil {
		setters = append(setters, setter{"patch", func() error { return b.SetPatch(*c.Patch) }})
	}
	if c.MajorFormat != nil {
		setters = append(setters, setter{"major-format", func() error { return b.SetMajorFormat(string(*c.MajorFormat)) }})
	}
	if c.MinorFormat != nil {
		setters = append(setters, setter{"minor-format", func() error { return b.SetMinorFormat(string(*c.MinorFormat)) }})
	}
	if c.PatchFormat != nil {
		setters = append(setters, setter{"patch-format", func() error { return b.SetPatchFormat(string(*c.PatchFormat)) }})
	}
	if c.PreRelease != nil && strings.TrimSpace(*c.PreRelease) != "" {
		setters = append(setters, setter{"pre-release", func() error { return b.SetPreRelease(*c.PreRelease) }})
	}
	if c.MetaData != nil && strings.TrimSpace(*c.MetaData) != "" {
		setters = append(setters, setter{"metadata", func() error { return b.SetMetaData(*c.MetaData) }})
	}
	if c.Date != nil {
		setters = append(setters, setter{"date", func() error { return b.SetDate(c.Date.Time) }})
	}

	for _, s := range setters {
		if err := s.apply(); err != nil {
			return fmt.Errorf("invalid %s: %w", s.field, err)
		}
	}
	return nil
}

// HasMetaData reports whether an explicit, non-blank metadata is set. It
// overrides the metadata derived from version control.
func (c *Config) HasMetaData() bool {
	return c.MetaData != nil && strings.TrimSpace(*c.MetaData) != ""
}

// Formatter resolves the configured version-info formatter.
func (c *Config) Formatter() (output.Formatter, error) {
	name := output.DefaultFormatter
	if c.VersionInfo.Formatter != nil {
		name = *c.VersionInfo.Formatter
	}
	return output.Lookup(name)
}

// FileName returns the configured version-info file name, or the default
// name for f.
func (c *Config) FileName(f output.Formatter) string {
	if c.VersionInfo.FileName != nil && strings.TrimSpace(*c.VersionInfo.FileName) != "" {
		return *c.VersionInfo.FileName
	}
	return output.DefaultFileName(f)
}

// Pattern returns the tag glob; blank means every tag.
func (c *Config) Pattern() string {
	if c.TagPattern == nil || strings.TrimSpace(*c.TagPattern) == "" {
		return DefaultTagPattern
	}
	return *c.TagPattern
}
