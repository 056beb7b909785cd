package git

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// DirtySuffix is appended to a describe string when the working tree has
// uncommitted changes.
const DirtySuffix = "-dirty"

var (
	bareDescribeRegex   = regexp.MustCompile(`^([0-9a-f]{7,40})(` + DirtySuffix + `)?$`)
	taggedDescribeRegex = regexp.MustCompile(`^(.+)-(\d+)-g([0-9a-f]{7,40})(` + DirtySuffix + `)?$`)
)

// DescribeResult is a parsed "nearest tag" query: either a bare commit id,
// or a tag with the number of commits since it and the commit id.
type DescribeResult struct {
	Tag       opt.Value[string]
	Depth     opt.Value[int64]
	CommitID  opt.Value[string]
	TreeState semver.TreeState
}

// EmptyDescribe is used when no describe result is available: nothing is
// known and the tree is assumed dirty.
func EmptyDescribe() DescribeResult {
	return DescribeResult{TreeState: semver.TreeStateDirty}
}

// ParseDescribe parses "<commit>[-dirty]" or "<tag>-<depth>-g<commit>[-dirty]".
// The tag is matched greedily and may contain hyphens.
func ParseDescribe(s string) (DescribeResult, error) {
	if m := bareDescribeRegex.FindStringSubmatch(s); m != nil {
		return DescribeResult{
			CommitID:  opt.Of(m[1]),
			TreeState: semver.TreeStateOf(m[2] != ""),
		}, nil
	}

	m := taggedDescribeRegex.FindStringSubmatch(s)
	if m == nil {
		return DescribeResult{}, fmt.Errorf("%w: not a describe result: %q", semver.ErrInvalidFormat, s)
	}
	depth, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return DescribeResult{}, fmt.Errorf("%w: invalid depth %q in %q", semver.ErrInvalidFormat, m[2], s)
	}
	return DescribeResult{
		Tag:       opt.Of(m[1]),
		Depth:     opt.Of(depth),
		CommitID:  opt.Of(m[3]),
		TreeState: semver.TreeStateOf(m[4] != ""),
	}, nil
}

// WithDepth returns a copy with the depth replaced.
func (d DescribeResult) WithDepth(depth int64) DescribeResult {
	d.Depth = opt.Of(depth)
	return d
}

// String renders the describe string ParseDescribe accepts. The empty
// result renders as "".
func (d DescribeResult) String() string {
	commit, ok := d.CommitID.Get()
	if !ok {
		return ""
	}
	s := commit
	if tag, ok := d.Tag.Get(); ok {
		s = fmt.Sprintf("%s-%d-g%s", tag, d.Depth.OrElse(0), commit)
	}
	if d.TreeState.IsDirty() {
		s += DirtySuffix
	}
	return s
}

// BuildMetaData converts the result into the version metadata token.
func (d DescribeResult) BuildMetaData() (semver.BuildMetaData, error) {
	return semver.NewBuildMetaData(d.Depth, d.CommitID, d.TreeState)
}
