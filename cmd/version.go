package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
)

// Version and Commit are set at build time via -ldflags, e.g.
//
//	-X github.com/MyCarrier-DevOps/go-gitstamp/cmd.Version=1.2.0
var (
	Version = "dev"
	Commit  = ""
)

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gitstamp binary version",
	Run: func(cmd *cobra.Command, _ []string) {
		v, commit := binaryVersion(readBuildInfo)
		if commit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", v, git.Abbreviate(commit))
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// binaryVersion prefers the -ldflags values and falls back to the module
// version and vcs.revision recorded by `go install`.
func binaryVersion(readBuildInfo func() (*debug.BuildInfo, bool)) (string, string) {
	version, commit := Version, Commit
	info, ok := readBuildInfo()
	if !ok {
		return version, commit
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	if commit == "" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				commit = setting.Value
			}
		}
	}
	return version, commit
}
