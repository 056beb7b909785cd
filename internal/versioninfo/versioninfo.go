// Package versioninfo holds the record describing a stamped build: the
// resolved version plus the optional facts gathered from version control
// and the build host.
package versioninfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// VersionInfo is an immutable version-info record. Only the version is
// mandatory; every other field reports whether it was set.
type VersionInfo struct {
	version         string
	branch          opt.Value[string]
	commitID        opt.Value[string]
	commitIDAbbrev  opt.Value[string]
	commitMessage   opt.Value[string]
	commitTime      opt.Value[time.Time]
	commitUserName  opt.Value[string]
	commitUserEmail opt.Value[string]
	buildNumber     opt.Value[int64]
	dirty           opt.Value[bool]
	host            opt.Value[string]
}

func (v VersionInfo) Version() string                    { return v.version }
func (v VersionInfo) Branch() opt.Value[string]          { return v.branch }
func (v VersionInfo) CommitID() opt.Value[string]        { return v.commitID }
func (v VersionInfo) CommitIDAbbrev() opt.Value[string]  { return v.commitIDAbbrev }
func (v VersionInfo) CommitMessage() opt.Value[string]   { return v.commitMessage }
func (v VersionInfo) CommitTime() opt.Value[time.Time]   { return v.commitTime }
func (v VersionInfo) CommitUserName() opt.Value[string]  { return v.commitUserName }
func (v VersionInfo) CommitUserEmail() opt.Value[string] { return v.commitUserEmail }
func (v VersionInfo) BuildNumber() opt.Value[int64]      { return v.buildNumber }
func (v VersionInfo) Dirty() opt.Value[bool]             { return v.dirty }
func (v VersionInfo) Host() opt.Value[string]            { return v.host }

// Builder assembles a VersionInfo. Setters may be chained; the zero value
// is not usable, start from NewBuilder.
type Builder struct {
	info VersionInfo
}

// NewBuilder starts a record for the given version string.
func NewBuilder(version string) *Builder {
	return &Builder{info: VersionInfo{version: version}}
}

func (b *Builder) Branch(s string) *Builder {
	b.info.branch = opt.Of(s)
	return b
}

func (b *Builder) CommitID(s string) *Builder {
	b.info.commitID = opt.Of(s)
	return b
}

func (b *Builder) CommitIDAbbrev(s string) *Builder {
	b.info.commitIDAbbrev = opt.Of(s)
	return b
}

func (b *Builder) CommitMessage(s string) *Builder {
	b.info.commitMessage = opt.Of(s)
	return b
}

// CommitTime sets the commit time. It is stored in UTC.
func (b *Builder) CommitTime(t time.Time) *Builder {
	b.info.commitTime = opt.Of(t.UTC())
	return b
}

func (b *Builder) CommitUserName(s string) *Builder {
	b.info.commitUserName = opt.Of(s)
	return b
}

func (b *Builder) CommitUserEmail(s string) *Builder {
	b.info.commitUserEmail = opt.Of(s)
	return b
}

func (b *Builder) BuildNumber(n int64) *Builder {
	b.info.buildNumber = opt.Of(n)
	return b
}

func (b *Builder) Dirty(d bool) *Builder {
	b.info.dirty = opt.Of(d)
	return b
}

func (b *Builder) Host(s string) *Builder {
	b.info.host = opt.Of(s)
	return b
}

// Build returns the record. The version must not be blank and the build
// number must not be negative.
func (b *Builder) Build() (VersionInfo, error) {
	if strings.TrimSpace(b.info.version) == "" {
		return VersionInfo{}, fmt.Errorf("%w: version is required", semver.ErrInvalidArgument)
	}
	if n, ok := b.info.buildNumber.Get(); ok && n < 0 {
		return VersionInfo{}, fmt.Errorf("%w: build number must not be negative: %d", semver.ErrInvalidArgument, n)
	}
	return b.info, nil
}
