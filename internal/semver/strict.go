package semver

import blang "github.com/blang/semver"

// IsStrict reports whether the extended version string is also a valid
// SemVer 2.0 version. Zero-padded calendar components such as "05" are not.
func (v SemanticVersion) IsStrict() bool {
	_, err := blang.Parse(v.ExtendedString())
	return err == nil
}
