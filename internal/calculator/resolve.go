// Package calculator resolves the stamped version and its version-info
// record from configuration and version-control facts.
package calculator

import (
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// Facts are the version-control and host facts gathered for one run. Any
// of them may be absent.
type Facts struct {
	Describe    opt.Value[git.DescribeResult]
	Head        opt.Value[git.Commit]
	Branch      opt.Value[string]
	CommitDepth opt.Value[int64]
	Host        opt.Value[string]
}

// VersionResult holds the resolved version and the facts it was built from.
type VersionResult struct {
	Version semver.SemanticVersion
	// Describe is the describe result the metadata was derived from, with
	// the depth back-filled. It is the empty describe when none was found.
	Describe git.DescribeResult
	// MetaData is the derived build metadata. It is not used in Version
	// when the configuration sets an explicit metadata.
	MetaData semver.BuildMetaData
	Info     versioninfo.VersionInfo
}

// Resolve computes the version for cfg from facts. It fails only on
// invalid configuration; absent facts fall back to defaults.
func Resolve(cfg *config.Config, facts Facts) (VersionResult, error) {
	b := semver.NewBuilder()
	if err := cfg.ApplyTo(b); err != nil {
		return VersionResult{}, err
	}

	describe, found := effectiveDescribe(facts)

	md, err := describe.BuildMetaData()
	if err != nil {
		return VersionResult{}, err
	}
	if !cfg.HasMetaData() {
		if token := md.String(); token != "" {
			if err := b.SetMetaData(token); err != nil {
				return VersionResult{}, err
			}
		}
	}

	version := b.Build()

	info, err := buildInfo(version, describe, found, facts)
	if err != nil {
		return VersionResult{}, err
	}

	return VersionResult{
		Version:  version,
		Describe: describe,
		MetaData: md,
		Info:     info,
	}, nil
}

// effectiveDescribe returns the describe fact, or the empty describe when
// absent. A commit without a depth gets the depth back-filled from the
// total commit count.
func effectiveDescribe(facts Facts) (git.DescribeResult, bool) {
	describe, found := facts.Describe.Get()
	if !found {
		return git.EmptyDescribe(), false
	}
	if describe.CommitID.IsPresent() && !describe.Depth.IsPresent() {
		describe = describe.WithDepth(backfillDepth(facts.CommitDepth))
	}
	return describe, true
}

func backfillDepth(commitDepth opt.Value[int64]) int64 {
	n, ok := commitDepth.Get()
	if !ok || n < 1 {
		return 0
	}
	return n - 1
}

func buildInfo(version semver.SemanticVersion, describe git.DescribeResult, found bool, facts Facts) (versioninfo.VersionInfo, error) {
	b := versioninfo.NewBuilder(version.ExtendedString())

	if head, ok := facts.Head.Get(); ok {
		if branch, ok := facts.Branch.Get(); ok {
			b.Branch(branch)
		}
		b.CommitID(head.Sha).
			CommitIDAbbrev(head.ShortSha()).
			CommitMessage(head.ShortMessage()).
			CommitTime(head.When).
			CommitUserName(head.AuthorName).
			CommitUserEmail(head.AuthorEmail)
	}

	if found {
		if depth, ok := describe.Depth.Get(); ok {
			b.BuildNumber(depth)
		}
		b.Dirty(describe.TreeState.IsDirty())
		if host, ok := facts.Host.Get(); ok {
			b.Host(host)
		}
	}

	return b.Build()
}
