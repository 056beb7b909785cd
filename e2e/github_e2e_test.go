// Package e2e contains end-to-end tests that exercise the full version
// calculation pipeline via the GitHub API mock server.
//
// These tests construct realistic mock GitHub API responses and run the
// full pipeline through github.Service → facts → resolve → variables.
package e2e

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/calculator"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/testutil"

	ghprovider "github.com/MyCarrier-DevOps/go-gitstamp/internal/github"
)

// ---------------------------------------------------------------------------
// Mock GitHub server helpers
// ---------------------------------------------------------------------------

// ghMock builds a mock GitHub API server for e2e tests. It answers the
// repository, commit, commit list, tag list, compare, and contents
// endpoints from an in-memory commit graph.
type ghMock struct {
	mux     *http.ServeMux
	server  *httptest.Server
	commits map[string]mockCommit // SHA → commit
	tags    []mockTag
	files   map[string]string
	branch  string // default branch name
	tipSha  string // tip of default branch
}

type mockCommit struct {
	sha     string
	message string
	date    string
	parents []string
}

type mockTag struct {
	name      string
	commitSha string
}

func newGHMock(defaultBranch, tipSha string) *ghMock {
	return &ghMock{
		mux:     http.NewServeMux(),
		commits: make(map[string]mockCommit),
		files:   make(map[string]string),
		branch:  defaultBranch,
		tipSha:  tipSha,
	}
}

func (m *ghMock) addCommit(sha, message, date string, parents ...string) {
	m.commits[sha] = mockCommit{sha: sha, message: message, date: date, parents: parents}
}

func (m *ghMock) addTag(name, commitSha string) {
	m.tags = append(m.tags, mockTag{name: name, commitSha: commitSha})
}

func (m *ghMock) addFile(path, content string) {
	m.files[path] = content
}

// ancestors returns sha and every commit reachable from it.
func (m *ghMock) ancestors(sha string) map[string]bool {
	seen := map[string]bool{}
	queue := []string{sha}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s] {
			continue
		}
		seen[s] = true
		queue = append(queue, m.commits[s].parents...)
	}
	return seen
}

func (m *ghMock) commitJSON(c mockCommit) map[string]interface{} {
	return map[string]interface{}{
		"sha": c.sha,
		"commit": map[string]interface{}{
			"message":   c.message,
			"author":    map[string]interface{}{"name": testutil.AuthorName, "email": testutil.AuthorEmail, "date": c.date},
			"committer": map[string]interface{}{"name": testutil.AuthorName, "email": testutil.AuthorEmail, "date": c.date},
		},
	}
}

func (m *ghMock) register() {
	base := "/api/v3/repos/testowner/testrepo"

	// GET /repos/{owner}/{repo}: default branch info.
	m.mux.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		writeGHJSON(w, map[string]interface{}{"default_branch": m.branch})
	})

	// GET /repos/{owner}/{repo}/commits/{ref}
	m.mux.HandleFunc(base+"/commits/", func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimPrefix(r.URL.Path, base+"/commits/")
		if ref == m.branch {
			ref = m.tipSha
		}
		c, ok := m.commits[ref]
		if !ok {
			http.Error(w, `{"message":"No commit found"}`, http.StatusNotFound)
			return
		}
		writeGHJSON(w, m.commitJSON(c))
	})

	// GET /repos/{owner}/{repo}/commits?sha=...&per_page=1: the last page
	// number is the number of reachable commits.
	m.mux.HandleFunc(base+"/commits", func(w http.ResponseWriter, r *http.Request) {
		sha := r.URL.Query().Get("sha")
		n := len(m.ancestors(sha))
		if n > 1 {
			w.Header().Set("Link", fmt.Sprintf(`<%s%s/commits?sha=%s&per_page=1&page=%d>; rel="last"`, m.server.URL, base, sha, n))
		}
		writeGHJSON(w, []interface{}{m.commitJSON(m.commits[sha])})
	})

	// GET /repos/{owner}/{repo}/tags
	m.mux.HandleFunc(base+"/tags", func(w http.ResponseWriter, r *http.Request) {
		out := make([]map[string]interface{}, 0, len(m.tags))
		for _, t := range m.tags {
			out = append(out, map[string]interface{}{
				"name":   t.name,
				"commit": map[string]interface{}{"sha": t.commitSha},
			})
		}
		writeGHJSON(w, out)
	})

	// GET /repos/{owner}/{repo}/compare/{base}...{head}
	m.mux.HandleFunc(base+"/compare/", func(w http.ResponseWriter, r *http.Request) {
		rng := strings.TrimPrefix(r.URL.Path, base+"/compare/")
		parts := strings.SplitN(rng, "...", 2)
		if len(parts) != 2 {
			http.Error(w, `{"message":"Bad compare"}`, http.StatusNotFound)
			return
		}
		fromBase, fromHead := m.ancestors(parts[0]), m.ancestors(parts[1])

		status, ahead := "diverged", 0
		if parts[0] == parts[1] {
			status = "identical"
		} else if fromHead[parts[0]] {
			status = "ahead"
			for s := range fromHead {
				if !fromBase[s] {
					ahead++
				}
			}
		} else if fromBase[parts[1]] {
			status = "behind"
		}
		writeGHJSON(w, map[string]interface{}{"status": status, "ahead_by": ahead})
	})

	// GET /repos/{owner}/{repo}/contents/{path}
	m.mux.HandleFunc(base+"/contents/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, base+"/contents/")
		content, ok := m.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeGHJSON(w, map[string]interface{}{"message": "Not Found"})
			return
		}
		writeGHJSON(w, map[string]interface{}{
			"type":     "file",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})
}

func writeGHJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

// runGitHubPipeline creates a github.Service from the mock server and runs
// the full calculation, loading config from the mock repository.
func runGitHubPipeline(t *testing.T, mock *ghMock) calculator.VersionResult {
	t.Helper()

	mock.register()
	mock.server = httptest.NewServer(mock.mux)
	defer mock.server.Close()

	client, err := gh.NewClient(nil).WithEnterpriseURLs(mock.server.URL+"/api/v3", mock.server.URL+"/api/v3")
	require.NoError(t, err)

	svc := ghprovider.NewService(client, "testowner", "testrepo")

	userCfg, err := svc.LoadConfig("")
	require.NoError(t, err)
	cfg, err := config.NewBuilder().Add(userCfg).Build()
	require.NoError(t, err)

	calc := calculator.NewVersionCalculator(svc,
		calculator.WithHostResolver(func() (string, error) { return "build-host", nil }))
	result, err := calc.Calculate(cfg)
	require.NoError(t, err)
	return result
}

// sha generates a deterministic 40-char hex SHA from a short identifier.
func sha(id string) string {
	base := fmt.Sprintf("%040s", id)
	return strings.ReplaceAll(base[len(base)-40:], " ", "0")
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestGitHub_NoTags(t *testing.T) {
	c1, c2 := sha("a1"), sha("a2")
	mock := newGHMock("main", c2)
	mock.addCommit(c1, "initial commit", "2025-01-01T12:00:00Z")
	mock.addCommit(c2, "second commit", "2025-01-01T12:01:00Z", c1)

	r := runGitHubPipeline(t, mock)

	require.Equal(t, "0.1.0-SNAPSHOT+1."+git.Abbreviate(c2), r.Version.ExtendedString())
	require.Equal(t, "main", r.Info.Branch().OrElse(""))
}

func TestGitHub_TagAtHead(t *testing.T) {
	c1 := sha("b1")
	mock := newGHMock("main", c1)
	mock.addCommit(c1, "release", "2025-01-01T12:00:00Z")
	mock.addTag("v1.0.0", c1)

	r := runGitHubPipeline(t, mock)

	require.Equal(t, "v1.0.0-0-g"+git.Abbreviate(c1), r.Describe.String())
	require.Equal(t, "0.1.0-SNAPSHOT+0."+git.Abbreviate(c1), r.Version.ExtendedString())
}

func TestGitHub_NearestTag(t *testing.T) {
	c1, c2, c3, c4 := sha("c1"), sha("c2"), sha("c3"), sha("c4")
	mock := newGHMock("main", c4)
	mock.addCommit(c1, "one", "2025-01-01T12:00:00Z")
	mock.addCommit(c2, "two", "2025-01-01T12:01:00Z", c1)
	mock.addCommit(c3, "three", "2025-01-01T12:02:00Z", c2)
	mock.addCommit(c4, "four", "2025-01-01T12:03:00Z", c3)
	mock.addTag("v1.0.0", c1)
	mock.addTag("v1.1.0", c2)

	r := runGitHubPipeline(t, mock)

	require.Equal(t, "v1.1.0", r.Describe.Tag.OrElse(""))
	require.Equal(t, "0.1.0-SNAPSHOT+2."+git.Abbreviate(c4), r.Version.ExtendedString())
}

func TestGitHub_TagOnOtherBranchIgnored(t *testing.T) {
	c1, c2, side := sha("d1"), sha("d2"), sha("d9")
	mock := newGHMock("main", c2)
	mock.addCommit(c1, "one", "2025-01-01T12:00:00Z")
	mock.addCommit(c2, "two", "2025-01-01T12:01:00Z", c1)
	mock.addCommit(side, "side", "2025-01-01T12:02:00Z", c1)
	mock.addTag("v9.0.0", side)

	r := runGitHubPipeline(t, mock)

	require.False(t, r.Describe.Tag.IsPresent())
	require.Equal(t, "0.1.0-SNAPSHOT+1."+git.Abbreviate(c2), r.Version.ExtendedString())
}

func TestGitHub_RemoteConfig(t *testing.T) {
	c1 := sha("e1")
	mock := newGHMock("main", c1)
	mock.addCommit(c1, "initial", "2025-01-01T12:00:00Z")
	mock.addFile(".github/gitstamp.yml", "major: 3\nminor: 2\npre-release: beta\ntag-pattern: release-*\n")
	mock.addTag("v1.0.0", c1)

	r := runGitHubPipeline(t, mock)

	// The v1.0.0 tag does not match release-*.
	require.False(t, r.Describe.Tag.IsPresent())
	require.Equal(t, "3.2.0-beta+0."+git.Abbreviate(c1), r.Version.ExtendedString())
}

func TestGitHub_VersionInfo(t *testing.T) {
	c1 := sha("f1")
	mock := newGHMock("trunk", c1)
	mock.addCommit(c1, "ship it\n\ndetails", "2025-02-03T04:05:06Z")

	r := runGitHubPipeline(t, mock)
	info := r.Info

	require.Equal(t, "trunk", info.Branch().OrElse(""))
	require.Equal(t, c1, info.CommitID().OrElse(""))
	require.Equal(t, "ship it", info.CommitMessage().OrElse(""))
	require.Equal(t, testutil.AuthorName, info.CommitUserName().OrElse(""))
	require.False(t, info.Dirty().OrElse(true))
	require.Equal(t, "build-host", info.Host().OrElse(""))
}

func TestGitHub_ParityWithLocal_NoTags(t *testing.T) {
	// Run same scenario locally and via GitHub mock, results should match.
	repo := testutil.NewTestRepo(t)
	first := repo.AddCommit("initial commit")
	localSha := repo.AddCommit("second commit")

	local := runPipeline(t, repo.Path())

	mock := newGHMock("master", localSha)
	mock.addCommit(first, "initial commit", "2025-01-01T12:01:00Z")
	mock.addCommit(localSha, "second commit", "2025-01-01T12:02:00Z", first)

	remote := runGitHubPipeline(t, mock)

	require.Equal(t, local.Version.ExtendedString(), remote.Version.ExtendedString())
	require.Equal(t, calculator.Variables(local), calculator.Variables(remote))
}

func TestGitHub_ParityWithLocal_CommitsAfterTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	first := repo.AddCommit("release commit")
	repo.CreateTag("v3.0.0", first)
	second := repo.AddCommit("fix")
	head := repo.AddCommit("another fix")

	local := runPipeline(t, repo.Path())

	mock := newGHMock("master", head)
	mock.addCommit(first, "release commit", "2025-01-01T12:01:00Z")
	mock.addCommit(second, "fix", "2025-01-01T12:02:00Z", first)
	mock.addCommit(head, "another fix", "2025-01-01T12:03:00Z", second)
	mock.addTag("v3.0.0", first)

	remote := runGitHubPipeline(t, mock)

	require.Equal(t, local.Describe.String(), remote.Describe.String())
	require.Equal(t, calculator.Variables(local), calculator.Variables(remote))
}
