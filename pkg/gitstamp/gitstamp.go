// Package gitstamp provides a public Go API for stamping a build with a
// version derived from configuration and git state. It supports both local
// repositories (via go-git) and remote GitHub repositories (via the GitHub
// API).
//
// Basic usage:
//
//	result, err := gitstamp.Calculate(gitstamp.LocalOptions{
//	    Path: "/path/to/repo",
//	})
//	fmt.Println(result.Version) // "0.1.0-SNAPSHOT+3.abc1234"
//
//	path, err := gitstamp.WriteVersionInfo(result, "build/resources/main")
package gitstamp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	gogit "github.com/go-git/go-git/v5"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/calculator"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/output"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"

	ghprovider "github.com/MyCarrier-DevOps/go-gitstamp/internal/github"
)

// Overrides replace configuration values after the config file is
// applied. Nil fields are left alone.
type Overrides struct {
	Major      *int64
	Minor      *int64
	Patch      *int64
	PreRelease *string
	MetaData   *string
	TagPattern *string
	Formatter  *string
	FileName   *string
}

// LocalOptions configures version calculation from a local git repository.
type LocalOptions struct {
	// Path to the working directory. Defaults to "." if empty. A directory
	// outside any git repository yields a version without VCS metadata.
	Path string

	// ConfigPath is the path to a gitstamp YAML or JSONC config file.
	// If empty, auto-detects gitstamp.yml and friends in the repo root.
	ConfigPath string

	Overrides Overrides

	// Logger receives debug output about absent facts. Defaults to discard.
	Logger *slog.Logger
}

// RemoteOptions configures version calculation via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKey is the PEM content of a GitHub App private key.
	AppKey string

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Ref is the git ref to version: branch, tag, or SHA. Defaults to the
	// repository's default branch.
	Ref string

	// ConfigPath is a local config file path that overrides remote config.
	ConfigPath string

	// RemoteConfigPath is a config file path inside the remote repository.
	// If empty, the usual file names are tried.
	RemoteConfigPath string

	Overrides Overrides

	Logger *slog.Logger
}

// Result holds the calculated version and its output variables.
type Result struct {
	// Version is the extended version string, e.g. "1.2.0-SNAPSHOT+3.abc1234".
	Version string

	// Strict reports whether Version is a valid SemVer 2.0 string. Calendar
	// formats with zero padding produce non-strict versions.
	Strict bool

	// Variables contains the output variables keyed by name: Version,
	// ExtendedVersion, Major, Minor, Patch, PreRelease, Metadata, Tag,
	// BuildNumber, CommitId, Dirty.
	Variables map[string]string

	cfg  *config.Config
	info versioninfo.VersionInfo
}

// Info returns the version-info record.
func (r *Result) Info() versioninfo.VersionInfo {
	return r.info
}

// Calculate computes the version from a local working directory.
func Calculate(opts LocalOptions) (*Result, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	svc, workDir, err := openLocal(path, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	var fileCfg *config.Config
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.FindFile(workDir)
	}
	if configPath != "" {
		fileCfg, err = config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
	}

	cfg, err := buildConfig(fileCfg, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return calculate(svc, cfg, opts.Logger)
}

// openLocal opens the repository containing path. When path is not inside
// a repository, the returned service reports every fact as absent.
func openLocal(path string, logger *slog.Logger) (git.Service, string, error) {
	repo, err := git.Open(path, git.WithLogger(logger))
	if err == nil {
		return repo, repo.WorkingDirectory(), nil
	}
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		if logger != nil {
			logger.Debug("no git repository found", "path", path)
		}
		return git.NoRepository{}, path, nil
	}
	return nil, "", err
}

// CalculateRemote computes the version via the GitHub API.
func CalculateRemote(ctx context.Context, opts RemoteOptions) (*Result, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKey:     opts.AppKey,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	svc := ghprovider.NewService(client, opts.Owner, opts.Repo,
		ghprovider.WithRef(opts.Ref),
		ghprovider.WithContext(ctx),
		ghprovider.WithLogger(opts.Logger),
	)

	var fileCfg *config.Config
	if opts.ConfigPath != "" {
		fileCfg, err = config.LoadFromFile(opts.ConfigPath)
	} else {
		fileCfg, err = svc.LoadConfig(opts.RemoteConfigPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	cfg, err := buildConfig(fileCfg, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return calculate(svc, cfg, opts.Logger)
}

// WriteVersionInfo writes the version-info file for result into dir using
// the configured formatter and file name. It returns the written path.
func WriteVersionInfo(result *Result, dir string) (string, error) {
	if result == nil || result.cfg == nil {
		return "", errors.New("no result to write")
	}
	if dir == "" {
		dir = output.DefaultOutputDir
	}
	f, err := result.cfg.Formatter()
	if err != nil {
		return "", err
	}
	return output.WriteFile(dir, result.cfg.FileName(f), f, result.info)
}

// calculate runs the shared version calculation pipeline.
func calculate(svc git.Service, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	calc := calculator.NewVersionCalculator(svc, calculator.WithLogger(logger))
	vr, err := calc.Calculate(cfg)
	if err != nil {
		return nil, fmt.Errorf("calculating version: %w", err)
	}
	return &Result{
		Version:   vr.Version.ExtendedString(),
		Strict:    vr.Version.IsStrict(),
		Variables: calculator.Variables(vr),
		cfg:       cfg,
		info:      vr.Info,
	}, nil
}

func buildConfig(fileCfg *config.Config, o Overrides) (*config.Config, error) {
	override := &config.Config{
		Major:      o.Major,
		Minor:      o.Minor,
		Patch:      o.Patch,
		PreRelease: o.PreRelease,
		MetaData:   o.MetaData,
		TagPattern: o.TagPattern,
	}
	override.VersionInfo.Formatter = o.Formatter
	override.VersionInfo.FileName = o.FileName

	return config.NewBuilder().Add(fileCfg).Add(override).Build()
}
