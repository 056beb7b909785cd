package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"

	blang "github.com/blang/semver"
	gh "github.com/google/go-github/v68/github"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

// Compile-time check that Service implements git.Service.
var _ git.Service = (*Service)(nil)

const (
	defaultMaxTags = 100
	tagsPerPage    = 100
)

// Compare API statuses for which base is an ancestor of head.
const (
	statusAhead     = "ahead"
	statusIdentical = "identical"
)

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Service implements git.Service using the GitHub REST API. There is no
// working tree, so describe results are always clean.
type Service struct {
	client  *gh.Client
	owner   string
	repo    string
	ref     string // branch name, tag, or SHA; default branch when empty
	maxTags int    // cap on tags compared against HEAD
	cache   *apiCache
	ctx     context.Context
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRef sets the ref treated as HEAD.
func WithRef(ref string) Option {
	return func(s *Service) { s.ref = ref }
}

// WithMaxTags caps how many matching tags are compared against HEAD. The
// newest tags are compared first.
func WithMaxTags(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTags = n
		}
	}
}

// WithContext sets the context for API requests.
func WithContext(ctx context.Context) Option {
	return func(s *Service) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the logger used to report failed API calls.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service for owner/repo.
func NewService(client *gh.Client, owner, repo string, opts ...Option) *Service {
	s := &Service{
		client:  client,
		owner:   owner,
		repo:    repo,
		maxTags: defaultMaxTags,
		cache:   newCache(),
		ctx:     context.Background(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the repository in owner/repo form.
func (s *Service) Path() string {
	return fmt.Sprintf("github.com/%s/%s", s.owner, s.repo)
}

// IsHeadDetached reports whether the ref is a commit SHA.
func (s *Service) IsHeadDetached() bool {
	return shaPattern.MatchString(s.ref)
}

// Describe finds the matching tag with the fewest commits between it and
// HEAD, using the compare API. Ties go to the greatest tag name.
func (s *Service) Describe(pattern string) (git.DescribeResult, bool) {
	result, err := s.describe(pattern)
	if err != nil {
		s.logger.Debug("describe unavailable", "repository", s.Path(), "pattern", pattern, "error", err)
		return git.DescribeResult{}, false
	}
	return result, true
}

func (s *Service) describe(pattern string) (git.DescribeResult, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = git.MatchAllPattern
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return git.DescribeResult{}, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}

	head, err := s.head()
	if err != nil {
		return git.DescribeResult{}, err
	}

	result := git.DescribeResult{
		CommitID:  opt.Of(head.ShortSha()),
		TreeState: semver.TreeStateClean,
	}

	tags, err := s.tags()
	if err != nil {
		return git.DescribeResult{}, err
	}

	var (
		bestName  string
		bestDepth int64 = -1
		compared  int
	)
	for _, tag := range tags {
		name := tag.Name
		if !git.MatchTag(pattern, name) {
			continue
		}
		if compared >= s.maxTags {
			s.logger.Debug("tag comparison limit reached", "limit", s.maxTags)
			break
		}
		compared++

		depth, ok, err := s.depthSince(tag.CommitSha, head.Sha)
		if err != nil {
			return git.DescribeResult{}, err
		}
		if !ok {
			continue
		}
		if bestDepth < 0 || depth < bestDepth || (depth == bestDepth && name > bestName) {
			bestName, bestDepth = name, depth
		}
	}

	if bestDepth < 0 {
		return result, nil
	}
	result.Tag = opt.Of(bestName)
	return result.WithDepth(bestDepth), nil
}

// depthSince returns the number of commits head is ahead of base. ok is
// false when base is not an ancestor of head.
func (s *Service) depthSince(base, head string) (int64, bool, error) {
	if base == head {
		return 0, true, nil
	}

	cmp, cached := s.cache.getComparison(base, head)
	if !cached {
		c, _, err := s.client.Repositories.CompareCommits(s.ctx, s.owner, s.repo, base, head, &gh.ListOptions{PerPage: 1})
		if err != nil {
			return 0, false, fmt.Errorf("comparing %s...%s: %w", git.Abbreviate(base), git.Abbreviate(head), err)
		}
		cmp = comparison{status: c.GetStatus(), aheadBy: int64(c.GetAheadBy())}
		s.cache.putComparison(base, head, cmp)
	}

	switch cmp.status {
	case statusIdentical:
		return 0, true, nil
	case statusAhead:
		return cmp.aheadBy, true, nil
	default:
		return 0, false, nil
	}
}

// tags lists every tag with the commit it points at, newest first. The
// tags API already peels annotated tags.
func (s *Service) tags() ([]git.Tag, error) {
	if tags, ok := s.cache.getTags(); ok {
		return tags, nil
	}

	var tags []git.Tag
	opts := &gh.ListOptions{PerPage: tagsPerPage}
	for {
		page, resp, err := s.client.Repositories.ListTags(s.ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		for _, t := range page {
			tags = append(tags, git.Tag{
				Name:      t.GetName(),
				CommitSha: t.GetCommit().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.SliceStable(tags, func(i, j int) bool { return newerTag(tags[i].Name, tags[j].Name) })
	s.cache.putTags(tags)
	return tags, nil
}

// newerTag orders version-like names ("v1.10.0") by precedence, ahead of
// any other names, which sort in reverse lexical order.
func newerTag(a, b string) bool {
	va, errA := blang.ParseTolerant(a)
	vb, errB := blang.ParseTolerant(b)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c > 0
		}
		return a > b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a > b
	}
}

func (s *Service) Head() (git.Commit, bool) {
	head, err := s.head()
	if err != nil {
		s.logger.Debug("head unavailable", "repository", s.Path(), "error", err)
		return git.Commit{}, false
	}
	return head, true
}

func (s *Service) head() (git.Commit, error) {
	if head, ok := s.cache.getHead(); ok {
		return head, nil
	}

	ref, err := s.resolveRef()
	if err != nil {
		return git.Commit{}, err
	}

	rc, _, err := s.client.Repositories.GetCommit(s.ctx, s.owner, s.repo, ref, nil)
	if err != nil {
		return git.Commit{}, fmt.Errorf("getting commit %s: %w", ref, err)
	}

	head := convertRepositoryCommit(rc)
	s.cache.putHead(head)
	return head, nil
}

// Branch returns the ref, the default branch when no ref is set, or the
// SHA when the ref is a commit.
func (s *Service) Branch() (string, bool) {
	ref, err := s.resolveRef()
	if err != nil {
		s.logger.Debug("branch unavailable", "repository", s.Path(), "error", err)
		return "", false
	}
	if s.IsHeadDetached() {
		s.logger.Debug("ref is a commit, reporting it as the branch", "ref", ref)
	}
	return ref, true
}

// CommitDepth counts the commits reachable from HEAD. With one commit per
// page, the last page number is the count.
func (s *Service) CommitDepth() (int64, bool) {
	if n, ok := s.cache.getCommitCount(); ok {
		return n, true
	}

	head, err := s.head()
	if err != nil {
		s.logger.Debug("commit depth unavailable", "repository", s.Path(), "error", err)
		return 0, false
	}

	commits, resp, err := s.client.Repositories.ListCommits(s.ctx, s.owner, s.repo, &gh.CommitsListOptions{
		SHA:         head.Sha,
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		s.logger.Debug("commit depth unavailable", "repository", s.Path(), "error", err)
		return 0, false
	}

	n := int64(len(commits))
	if resp.LastPage > 0 {
		n = int64(resp.LastPage)
	}
	s.cache.putCommitCount(n)
	return n, true
}

// FetchFileContent fetches a file's content at the ref.
// Used to load configuration files from the remote repository.
func (s *Service) FetchFileContent(file string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{}
	if s.ref != "" {
		opts.Ref = s.ref
	}

	content, _, _, err := s.client.Repositories.GetContents(s.ctx, s.owner, s.repo, file, opts)
	if err != nil {
		return "", fmt.Errorf("fetching file %s: %w", file, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s is not a file", file)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding file content: %w", err)
	}
	return decoded, nil
}

func (s *Service) resolveRef() (string, error) {
	if s.ref != "" {
		return s.ref, nil
	}
	if name, ok := s.cache.getDefaultBranch(); ok {
		return name, nil
	}

	repo, _, err := s.client.Repositories.Get(s.ctx, s.owner, s.repo)
	if err != nil {
		return "", fmt.Errorf("getting repository info: %w", err)
	}
	name := repo.GetDefaultBranch()
	if name == "" {
		return "", fmt.Errorf("repository %s has no default branch", s.Path())
	}
	s.cache.putDefaultBranch(name)
	return name, nil
}

// convertRepositoryCommit converts a GitHub API RepositoryCommit to a git.Commit.
func convertRepositoryCommit(rc *gh.RepositoryCommit) git.Commit {
	if rc == nil {
		return git.Commit{}
	}

	c := git.Commit{Sha: rc.GetSHA()}
	if rc.Commit != nil {
		c.Message = rc.Commit.GetMessage()
		if committer := rc.Commit.GetCommitter(); committer != nil {
			c.When = committer.GetDate().Time
		}
		if author := rc.Commit.GetAuthor(); author != nil {
			c.AuthorName = author.GetName()
			c.AuthorEmail = author.GetEmail()
		}
	}
	return c
}

// LoadConfig reads the gitstamp configuration from the repository at the
// ref. A non-empty file is fetched as given; otherwise each of
// config.FileNames is tried in order. It returns nil when no file exists.
func (s *Service) LoadConfig(file string) (*config.Config, error) {
	if file != "" {
		content, err := s.FetchFileContent(file)
		if err != nil {
			return nil, fmt.Errorf("fetching remote config %s: %w", file, err)
		}
		return parseRemoteConfig(file, content)
	}

	for _, name := range config.FileNames {
		content, err := s.FetchFileContent(name)
		if err != nil {
			// 404 means the file doesn't exist; try the next name.
			if IsNotFoundError(err) {
				continue
			}
			return nil, fmt.Errorf("fetching remote config %s: %w", name, err)
		}
		s.logger.Debug("using remote config", "repository", s.Path(), "file", name)
		return parseRemoteConfig(name, content)
	}
	return nil, nil
}

func parseRemoteConfig(name, content string) (*config.Config, error) {
	cfg, err := config.Parse(name, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("parsing remote config %s: %w", name, err)
	}
	return cfg, nil
}
