package cmd

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = prev })
}

func setVersion(t *testing.T, version, commit string) {
	t.Helper()
	prevVersion, prevCommit := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() { Version, Commit = prevVersion, prevCommit })
}

func TestVersionCmd_PrintsBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"dev", "dev", "", "dev\n"},
		{"ldflags version", "1.4.0-rc+build.2", "", "1.4.0-rc+build.2\n"},
		{"ldflags commit", "1.4.0", "0123456789abcdef0123456789abcdef01234567", "1.4.0 (0123456)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVersion(t, tt.version, tt.commit)
			stubBuildInfo(t, nil)

			stdout, _, err := executeCommand(t, "version")
			require.NoError(t, err)
			require.Equal(t, tt.want, stdout)
		})
	}
}

func TestBinaryVersion_FallsBackToBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "fedcba9876543210"},
		},
	}
	read := func() (*debug.BuildInfo, bool) { return info, true }

	setVersion(t, "dev", "")
	v, commit := binaryVersion(read)
	require.Equal(t, "v0.3.0", v)
	require.Equal(t, "fedcba9876543210", commit)

	setVersion(t, "1.0.0", "abc")
	v, commit = binaryVersion(read)
	require.Equal(t, "1.0.0", v)
	require.Equal(t, "abc", commit)

	info.Main.Version = "(devel)"
	setVersion(t, "dev", "")
	v, _ = binaryVersion(read)
	require.Equal(t, "dev", v)
}
