package semver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
)

var versionRegex = regexp.MustCompile(
	`^(\d{1,4})\.(\d{1,2})\.(\d{1,2})(?:-([0-9A-Za-z.-]+)(?:\+([0-9A-Za-z.-]+))?)?$`,
)

// SemanticVersion represents a major.minor.patch[-preRelease][+metadata]
// version. Components are kept as strings so calendar values keep their
// leading zeros. This type is immutable and comparable with ==.
type SemanticVersion struct {
	major      string
	minor      string
	patch      string
	preRelease opt.Value[string]
	metadata   opt.Value[string]
}

// Parse parses a version string. Metadata is only accepted after a
// pre-release identifier.
func Parse(s string) (SemanticVersion, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return SemanticVersion{}, fmt.Errorf("%w: not a semantic version: %q", ErrInvalidFormat, s)
	}

	v := SemanticVersion{
		major: matches[1],
		minor: matches[2],
		patch: matches[3],
	}
	if matches[4] != "" {
		v.preRelease = opt.Of(matches[4])
	}
	if matches[5] != "" {
		v.metadata = opt.Of(matches[5])
	}
	return v, nil
}

func (v SemanticVersion) Major() string { return v.major }
func (v SemanticVersion) Minor() string { return v.minor }
func (v SemanticVersion) Patch() string { return v.patch }

// PreRelease returns the pre-release identifier, if any.
func (v SemanticVersion) PreRelease() opt.Value[string] { return v.preRelease }

// MetaData returns the build metadata identifier, if any.
func (v SemanticVersion) MetaData() opt.Value[string] { return v.metadata }

// Equal reports whether all five components are equal.
func (v SemanticVersion) Equal(other SemanticVersion) bool {
	return v == other
}

// String returns only major.minor.patch.
func (v SemanticVersion) String() string {
	return v.major + "." + v.minor + "." + v.patch
}

// StringWithPreRelease returns major.minor.patch followed by -preRelease
// when present and not blank. Build metadata is left out.
func (v SemanticVersion) StringWithPreRelease() string {
	if pre, ok := v.preRelease.Get(); ok && !isBlank(pre) {
		return v.String() + "-" + pre
	}
	return v.String()
}

// ExtendedString returns the full version, appending -preRelease and
// +metadata when each is present and not blank.
func (v SemanticVersion) ExtendedString() string {
	var b strings.Builder
	b.WriteString(v.StringWithPreRelease())
	if meta, ok := v.metadata.Get(); ok && !isBlank(meta) {
		b.WriteByte('+')
		b.WriteString(meta)
	}
	return b.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
