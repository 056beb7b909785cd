package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
)

const dirtyToken = "dirty"

var (
	commitIDRegex      = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)
	buildMetaDataRegex = regexp.MustCompile(`^(\d*)\.([0-9a-fA-F]{7,40})(\.` + dirtyToken + `)?$`)
)

// BuildMetaData is the compact token embedded as the +metadata segment:
// buildNumber.commitId[.dirty]. This type is immutable.
type BuildMetaData struct {
	buildNumber opt.Value[int64]
	commitID    opt.Value[string]
	treeState   TreeState
}

// NewBuildMetaData validates its inputs and lowercases the commit id.
func NewBuildMetaData(buildNumber opt.Value[int64], commitID opt.Value[string], state TreeState) (BuildMetaData, error) {
	if n, ok := buildNumber.Get(); ok && n < 0 {
		return BuildMetaData{}, fmt.Errorf("%w: build number must be greater than or equal to zero, got %d", ErrInvalidArgument, n)
	}
	if id, ok := commitID.Get(); ok {
		if !commitIDRegex.MatchString(id) {
			return BuildMetaData{}, fmt.Errorf("%w: commit id %q does not match %s", ErrInvalidArgument, id, commitIDRegex)
		}
		commitID = opt.Of(strings.ToLower(id))
	}
	return BuildMetaData{buildNumber: buildNumber, commitID: commitID, treeState: state}, nil
}

// ParseBuildMetaData decodes a token produced by String. The grammar needs a
// leading numeral, so a token encoded without a build number (".abc1234" or
// "abc1234") is rejected.
func ParseBuildMetaData(s string) (BuildMetaData, error) {
	matches := buildMetaDataRegex.FindStringSubmatch(s)
	if matches == nil {
		return BuildMetaData{}, fmt.Errorf("%w: not a build metadata token: %q", ErrInvalidFormat, s)
	}

	n, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return BuildMetaData{}, fmt.Errorf("%w: invalid build number %q in %q", ErrInvalidFormat, matches[1], s)
	}

	state := TreeStateClean
	if matches[3] != "" {
		state = TreeStateDirty
	}
	return NewBuildMetaData(opt.Of(n), opt.Of(matches[2]), state)
}

// BuildNumber returns the number of commits since the nearest tag, if known.
func (m BuildMetaData) BuildNumber() opt.Value[int64] { return m.buildNumber }

// CommitID returns the lowercase commit id, if known.
func (m BuildMetaData) CommitID() opt.Value[string] { return m.commitID }

// TreeState returns the working tree state.
func (m BuildMetaData) TreeState() TreeState { return m.treeState }

// String encodes the token: the build number, the commit id and "dirty",
// each only when present, joined by dots.
func (m BuildMetaData) String() string {
	parts := make([]string, 0, 3)
	if n, ok := m.buildNumber.Get(); ok {
		parts = append(parts, strconv.FormatInt(n, 10))
	}
	if id, ok := m.commitID.Get(); ok && !isBlank(id) {
		parts = append(parts, id)
	}
	if m.treeState == TreeStateDirty {
		parts = append(parts, dirtyToken)
	}
	return strings.Join(parts, ".")
}
