package git

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// MatchAllPattern is the tag glob used when the configured pattern is blank.
const MatchAllPattern = "*"

// Compile-time check that GoGitService implements Service.
var _ Service = (*GoGitService)(nil)

// GoGitService implements Service using go-git.
type GoGitService struct {
	repo    *gogit.Repository
	workDir string
	logger  *slog.Logger
}

// Option configures a GoGitService.
type Option func(*GoGitService)

// WithLogger sets the logger used to report recovered failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *GoGitService) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens the git repository containing path, searching parent
// directories for the .git directory.
func Open(dir string, opts ...Option) (*GoGitService, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", dir, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	s := &GoGitService{
		repo:    r,
		workDir: wt.Filesystem.Root(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// WorkingDirectory returns the root of the working tree.
func (s *GoGitService) WorkingDirectory() string {
	return s.workDir
}

// Describe finds the nearest tag matching pattern reachable from HEAD and
// reports it in long form. When no tag matches, only the abbreviated HEAD
// commit is reported.
func (s *GoGitService) Describe(pattern string) (DescribeResult, bool) {
	result, err := s.describe(pattern)
	if err != nil {
		s.logger.Debug("describe unavailable", "pattern", pattern, "error", err)
		return DescribeResult{}, false
	}
	return result, true
}

func (s *GoGitService) describe(pattern string) (DescribeResult, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = MatchAllPattern
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return DescribeResult{}, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}

	head, err := s.headCommit()
	if err != nil {
		return DescribeResult{}, err
	}

	tagged, err := s.taggedCommits(pattern)
	if err != nil {
		return DescribeResult{}, err
	}

	dirty, err := s.hasUncommittedChanges()
	if err != nil {
		return DescribeResult{}, err
	}

	result := DescribeResult{
		CommitID:  opt.Of(Abbreviate(head.Hash.String())),
		TreeState: semver.TreeStateOf(dirty),
	}

	target, name, err := s.nearestTag(head, tagged)
	if err != nil {
		return DescribeResult{}, err
	}
	if target == nil {
		return result, nil
	}

	depth, err := s.depthSince(head, target)
	if err != nil {
		return DescribeResult{}, err
	}
	result.Tag = opt.Of(name)
	return result.WithDepth(depth), nil
}

// hasUncommittedChanges reports staged or unstaged changes to tracked
// files. Untracked files do not count.
func (s *GoGitService) hasUncommittedChanges() (bool, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}

	for _, fs := range status {
		if fs.Staging == gogit.Untracked && fs.Worktree == gogit.Untracked {
			continue
		}
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// taggedCommits maps each commit hash to the names of the tags matching
// pattern that point at it. Annotated tags are peeled.
func (s *GoGitService) taggedCommits(pattern string) (map[plumbing.Hash][]string, error) {
	iter, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	tagged := make(map[plumbing.Hash][]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !MatchTag(pattern, name) {
			return nil
		}
		sha, err := s.peel(ref.Hash())
		if err != nil {
			s.logger.Debug("skipping tag", "tag", name, "error", err)
			return nil
		}
		tagged[sha] = append(tagged[sha], name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tagged, nil
}

// MatchTag reports whether name matches the glob pattern. The match-all
// pattern also accepts hierarchical names such as "release/1.0".
func MatchTag(pattern, name string) bool {
	if pattern == MatchAllPattern {
		return true
	}
	ok, _ := path.Match(pattern, name)
	return ok
}

func (s *GoGitService) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	if tagObj, err := s.repo.TagObject(hash); err == nil {
		c, err := tagObj.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("peeling annotated tag: %w", err)
		}
		return c.Hash, nil
	}
	if _, err := s.repo.CommitObject(hash); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("tag does not point to a commit: %w", err)
	}
	return hash, nil
}

// nearestTag walks history breadth-first from head and returns the first
// tagged commit. When several tags share that commit, the greatest name wins.
func (s *GoGitService) nearestTag(head *object.Commit, tagged map[plumbing.Hash][]string) (*object.Commit, string, error) {
	if len(tagged) == 0 {
		return nil, "", nil
	}

	var (
		found *object.Commit
		name  string
	)
	err := object.NewCommitIterBSF(head, nil, nil).ForEach(func(c *object.Commit) error {
		names, ok := tagged[c.Hash]
		if !ok {
			return nil
		}
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		found, name = c, sorted[len(sorted)-1]
		return storer.ErrStop
	})
	if err != nil {
		return nil, "", fmt.Errorf("walking history: %w", err)
	}
	return found, name, nil
}

// depthSince counts the commits reachable from head but not from target.
func (s *GoGitService) depthSince(head, target *object.Commit) (int64, error) {
	seen := make(map[plumbing.Hash]bool)
	err := object.NewCommitPreorderIter(target, nil, nil).ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking tag history: %w", err)
	}

	var depth int64
	err = object.NewCommitPreorderIter(head, seen, nil).ForEach(func(*object.Commit) error {
		depth++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking head history: %w", err)
	}
	return depth, nil
}

// Head returns the facts of the HEAD commit.
func (s *GoGitService) Head() (Commit, bool) {
	c, err := s.headCommit()
	if err != nil {
		s.logger.Debug("head unavailable", "error", err)
		return Commit{}, false
	}
	return convertCommit(c), true
}

// Branch returns the short branch name, or the HEAD commit id when HEAD is
// detached.
func (s *GoGitService) Branch() (string, bool) {
	ref, err := s.repo.Head()
	if err != nil {
		s.logger.Debug("branch unavailable", "error", err)
		return "", false
	}
	if !ref.Name().IsBranch() {
		return ref.Hash().String(), true
	}
	return ref.Name().Short(), true
}

// CommitDepth counts every commit reachable from HEAD, HEAD included.
func (s *GoGitService) CommitDepth() (int64, bool) {
	ref, err := s.repo.Head()
	if err != nil {
		s.logger.Debug("commit depth unavailable", "error", err)
		return 0, false
	}
	iter, err := s.repo.Log(&gogit.LogOptions{From: ref.Hash()})
	if err != nil {
		s.logger.Debug("commit depth unavailable", "error", err)
		return 0, false
	}

	var n int64
	if err := iter.ForEach(func(*object.Commit) error {
		n++
		return nil
	}); err != nil {
		s.logger.Debug("commit depth unavailable", "error", err)
		return 0, false
	}
	return n, true
}

func (s *GoGitService) headCommit() (*object.Commit, error) {
	ref, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("repository has no commits: %w", err)
		}
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	c, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", ref.Hash(), err)
	}
	return c, nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	return Commit{
		Sha:         c.Hash.String(),
		Message:     c.Message,
		When:        c.Committer.When,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
	}
}
