package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/calculator"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/output"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
)

func calculateRunE(cmd *cobra.Command, _ []string) error {
	svc, workDir, err := openRepository(flagPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := loadConfig(cmd, workDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if flagShowConfig {
		return showConfig(cmd.OutOrStdout(), cfg)
	}

	result, err := calculate(svc, cfg)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), result)
}

// openRepository opens the repository containing path. Outside a
// repository every git fact is absent and the version carries no commit.
func openRepository(path string) (git.Service, string, error) {
	repo, err := git.Open(path, git.WithLogger(logger))
	if err == nil {
		return repo, repo.WorkingDirectory(), nil
	}
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		logger.Debug("no git repository found", "path", path)
		return git.NoRepository{}, path, nil
	}
	return nil, "", err
}

// loadConfig layers the config file (explicit or auto-detected in workDir)
// and the command-line overrides on the defaults.
func loadConfig(cmd *cobra.Command, workDir string) (*config.Config, error) {
	builder := config.NewBuilder()

	configPath := flagConfig
	if configPath == "" {
		configPath = config.FindFile(workDir)
	}

	if configPath != "" {
		logger.Debug("using config file", "path", configPath)
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(userCfg)
	}

	overrides, err := configOverrides(cmd)
	if err != nil {
		return nil, err
	}
	return builder.Add(overrides).Build()
}

// configOverrides converts the override flags that were set into a Config.
func configOverrides(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg := &config.Config{}

	if flags.Changed("major") {
		cfg.Major = &flagMajor
	}
	if flags.Changed("minor") {
		cfg.Minor = &flagMinor
	}
	if flags.Changed("patch") {
		cfg.Patch = &flagPatch
	}

	formats := []struct {
		name  string
		value string
		dst   **semver.CalendarFormat
	}{
		{"major-format", flagMajorFormat, &cfg.MajorFormat},
		{"minor-format", flagMinorFormat, &cfg.MinorFormat},
		{"patch-format", flagPatchFormat, &cfg.PatchFormat},
	}
	for _, f := range formats {
		if !flags.Changed(f.name) {
			continue
		}
		format, err := semver.ParseCalendarFormat(f.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = &format
	}

	if flags.Changed("pre-release") {
		cfg.PreRelease = &flagPreRelease
	}
	if flags.Changed("metadata") {
		cfg.MetaData = &flagMetaData
	}
	if flags.Changed("date") {
		d, err := config.ParseDate(flagDate)
		if err != nil {
			return nil, fmt.Errorf("--date: %w", err)
		}
		cfg.Date = &d
	}
	if flags.Changed("tag-pattern") {
		cfg.TagPattern = &flagTagPattern
	}
	if flags.Lookup("formatter") != nil && flags.Changed("formatter") {
		cfg.VersionInfo.Formatter = &flagFormatter
	}
	if flags.Lookup("file-name") != nil && flags.Changed("file-name") {
		cfg.VersionInfo.FileName = &flagFileName
	}
	return cfg, nil
}

// calculate resolves the version and warns when it is not strict SemVer.
func calculate(svc git.Service, cfg *config.Config) (calculator.VersionResult, error) {
	calc := calculator.NewVersionCalculator(svc, calculator.WithLogger(logger))
	result, err := calc.Calculate(cfg)
	if err != nil {
		return calculator.VersionResult{}, fmt.Errorf("calculating version: %w", err)
	}
	if !result.Version.IsStrict() {
		logger.Warn("version is not valid SemVer 2.0, check zero-padded calendar formats",
			"version", result.Version.ExtendedString())
	}
	return result, nil
}

// showConfig prints the effective configuration as JSON.
func showConfig(w io.Writer, cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeOutput writes the version, or its variables in the requested format.
func writeOutput(w io.Writer, result calculator.VersionResult) error {
	vars := calculator.Variables(result)

	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}

	switch strings.ToLower(flagOutput) {
	case "json":
		return output.WriteJSON(w, vars)
	case "env":
		return output.WriteAll(w, vars)
	case "":
		_, err := fmt.Fprintln(w, result.Version.ExtendedString())
		return err
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
