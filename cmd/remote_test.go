package cmd

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"

	ghprovider "github.com/MyCarrier-DevOps/go-gitstamp/internal/github"
)

const testHeadSha = "abc123def456abc123def456abc123def456abc1"

func TestParseOwnerRepo_Valid(t *testing.T) {
	owner, repo, err := parseOwnerRepo("myorg/myrepo")
	require.NoError(t, err)
	require.Equal(t, "myorg", owner)
	require.Equal(t, "myrepo", repo)
}

func TestParseOwnerRepo_Invalid(t *testing.T) {
	for _, s := range []string{"myrepo", "/myrepo", "myorg/", "", "myorg/myrepo/extra"} {
		t.Run(s, func(t *testing.T) {
			_, _, err := parseOwnerRepo(s)
			require.Error(t, err)
			require.Contains(t, err.Error(), "expected owner/repo")
		})
	}
}

func TestRemoteCmd_HasExpectedFlags(t *testing.T) {
	flags := remoteCmd.Flags()

	for _, name := range []string{
		"token", "github-app-id", "github-app-key", "github-app-key-path",
		"github-url", "ref", "max-tags", "remote-config-path",
	} {
		require.NotNil(t, flags.Lookup(name), "missing flag: %s", name)
	}
	require.Equal(t, "100", flags.Lookup("max-tags").DefValue)
}

func writeTestJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

func serveFile(w http.ResponseWriter, content string) {
	writeTestJSON(w, map[string]interface{}{
		"type":     "file",
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	})
}

// newRemoteMux serves testowner/testrepo with tag v2.0.0 three commits
// behind the default branch head.
func newRemoteMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/testowner/testrepo", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]interface{}{"default_branch": "main"})
	})
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/commits/main", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]interface{}{
			"sha": testHeadSha,
			"commit": map[string]interface{}{
				"message":   "feature work",
				"committer": map[string]interface{}{"date": "2025-01-15T12:00:00Z"},
			},
		})
	})
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/commits", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, []map[string]interface{}{{"sha": testHeadSha}})
	})
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/tags", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, []map[string]interface{}{
			{"name": "v2.0.0", "commit": map[string]interface{}{"sha": "1111111111111111111111111111111111111111"}},
		})
	})
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/compare/1111111111111111111111111111111111111111..."+testHeadSha,
		func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, map[string]interface{}{"status": "ahead", "ahead_by": 3})
		})
	return mux
}

func newTestService(t *testing.T, mux *http.ServeMux) *ghprovider.Service {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)
	return ghprovider.NewService(client, "testowner", "testrepo")
}

func TestRemote_Calculate(t *testing.T) {
	mux := newRemoteMux()
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/contents/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v3/repos/testowner/testrepo/contents/.github/gitstamp.yml" {
			serveFile(w, "major: 2\nminor: 0\npre-release: rc\n")
			return
		}
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out, _, err := executeCommand(t, "remote", "testowner/testrepo",
		"--token", "ghp_test", "--github-url", server.URL+"/api/v3")
	require.NoError(t, err)
	require.Equal(t, "2.0.0-rc+3.abc123d\n", out)
}

func TestRemote_JSONOutput(t *testing.T) {
	mux := newRemoteMux()
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/contents/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out, _, err := executeCommand(t, "remote", "testowner/testrepo",
		"--token", "ghp_test", "--github-url", server.URL+"/api/v3", "--output", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"Tag": "v2.0.0"`)
	require.Contains(t, out, `"Dirty": "false"`)
}

func TestRemote_InvalidRepository(t *testing.T) {
	_, _, err := executeCommand(t, "remote", "not-a-repo", "--token", "ghp_test")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected owner/repo")
}

func TestLoadRemoteConfig_RemoteConfigPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/contents/ci/stamp.yml", func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, "major: 3\n")
	})
	svc := newTestService(t, mux)

	flagRemoteConfigPath = "ci/stamp.yml"
	defer func() { flagRemoteConfigPath = "" }()

	cfg, err := loadRemoteConfig(remoteCmd, svc)
	require.NoError(t, err)
	require.Equal(t, int64(3), *cfg.Major)
}

func TestLoadRemoteConfig_NoRemoteConfig_UsesDefaults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/testowner/testrepo/contents/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	svc := newTestService(t, mux)

	cfg, err := loadRemoteConfig(remoteCmd, svc)
	require.NoError(t, err)
	require.Equal(t, "SNAPSHOT", *cfg.PreRelease)
}

func TestLoadRemoteConfig_LocalConfigOverride(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())

	path := filepath.Join(t.TempDir(), "local.yml")
	require.NoError(t, os.WriteFile(path, []byte("major: 9\n"), 0o644))

	flagConfig = path
	defer func() { flagConfig = "" }()

	cfg, err := loadRemoteConfig(remoteCmd, svc)
	require.NoError(t, err)
	require.Equal(t, int64(9), *cfg.Major)
}

func TestLoadRemoteConfig_LocalConfigInvalid(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())

	flagConfig = "/nonexistent/config.yml"
	defer func() { flagConfig = "" }()

	_, err := loadRemoteConfig(remoteCmd, svc)
	require.Error(t, err)
}
