package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/output"
)

var (
	flagOutputDir string
	flagFormatter string
	flagFileName  string
)

var versionInfoCmd = &cobra.Command{
	Use:   "version-info",
	Short: "Write the version-info file for the current build",
	Long: `Compute the version and write a version-info record (version, branch,
commit, build number, dirty flag, host) to <output-dir>/<file-name>.

The formatter is one of TOML, YAML, JSON, or HOCON. The file name defaults
to version.<ext> for the formatter; only its base name is used.

Examples:
  gitstamp version-info
  gitstamp version-info --formatter json --output-dir dist
  gitstamp version-info --file-name build-info.toml`,
	Args: cobra.NoArgs,
	RunE: versionInfoRunE,
}

func init() {
	versionInfoCmd.Flags().StringVar(&flagOutputDir, "output-dir", output.DefaultOutputDir, "directory the version-info file is written to")
	versionInfoCmd.Flags().StringVar(&flagFormatter, "formatter", "", "version-info encoding: TOML, YAML, JSON, or HOCON (default: from config, else TOML)")
	versionInfoCmd.Flags().StringVar(&flagFileName, "file-name", "", "version-info file name (default: version.<ext>)")

	rootCmd.AddCommand(versionInfoCmd)
}

func versionInfoRunE(cmd *cobra.Command, _ []string) error {
	svc, workDir, err := openRepository(flagPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := loadConfig(cmd, workDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	result, err := calculate(svc, cfg)
	if err != nil {
		return err
	}

	f, err := cfg.Formatter()
	if err != nil {
		return err
	}
	path, err := output.WriteFile(flagOutputDir, cfg.FileName(f), f, result.Info)
	if err != nil {
		return err
	}

	logger.Info("wrote version info", "path", path, "version", result.Info.Version())
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
