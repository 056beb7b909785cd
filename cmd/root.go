package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath         string
	flagConfig       string
	flagOutput       string
	flagShowVariable string
	flagShowConfig   bool
	flagVerbosity    string
)

// Configuration override flags. Only flags set on the command line are
// applied; see configOverrides.
var (
	flagMajor       int64
	flagMinor       int64
	flagPatch       int64
	flagMajorFormat string
	flagMinorFormat string
	flagPatchFormat string
	flagPreRelease  string
	flagMetaData    string
	flagDate        string
	flagTagPattern  string
)

// logger is configured from --verbosity before any command runs.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// rootCmd is the top-level command for gitstamp.
var rootCmd = &cobra.Command{
	Use:   "gitstamp",
	Short: "Stamp builds with a version derived from git state",
	Long: `gitstamp computes a semantic version from configuration and appends
build metadata derived from the repository: commits since the nearest tag,
the abbreviated commit id, and whether the working tree is dirty.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(flagVerbosity, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	// Default action is calculate.
	RunE: calculateRunE,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagPath, "path", "p", ".", "path to the working directory")
	pf.StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	pf.StringVarP(&flagOutput, "output", "o", "", "output format: json, env, or empty for the version only")
	pf.StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. Version, CommitId)")
	pf.BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	pf.StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")

	pf.Int64Var(&flagMajor, "major", 0, "override the major version")
	pf.Int64Var(&flagMinor, "minor", 0, "override the minor version")
	pf.Int64Var(&flagPatch, "patch", 0, "override the patch version")
	pf.StringVar(&flagMajorFormat, "major-format", "", "calendar format for the major version (e.g. YY, YYYY)")
	pf.StringVar(&flagMinorFormat, "minor-format", "", "calendar format for the minor version (e.g. MM, 0M, WW)")
	pf.StringVar(&flagPatchFormat, "patch-format", "", "calendar format for the patch version (e.g. DD, 0D)")
	pf.StringVar(&flagPreRelease, "pre-release", "", "override the pre-release identifier")
	pf.StringVar(&flagMetaData, "metadata", "", "override the build metadata derived from git")
	pf.StringVar(&flagDate, "date", "", "date used by calendar formats, YYYY-MM-DD (default: today)")
	pf.StringVar(&flagTagPattern, "tag-pattern", "", "glob selecting the tags considered by describe")
}

// newLogger builds the stderr logger for a verbosity name.
func newLogger(verbosity string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(verbosity)) {
	case "quiet":
		level = slog.LevelError
	case "", "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		return nil, fmt.Errorf("unknown verbosity %q: use quiet, info, or debug", verbosity)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
