package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"

	ghprovider "github.com/MyCarrier-DevOps/go-gitstamp/internal/github"
)

var (
	flagToken            string
	flagAppID            int64
	flagAppKey           string
	flagAppKeyPath       string
	flagGitHubURL        string
	flagRef              string
	flagMaxTags          int
	flagRemoteConfigPath string
)

var remoteCmd = &cobra.Command{
	Use:   "remote owner/repo",
	Short: "Calculate the version from a GitHub repository via API",
	Long: `Calculate the version by reading tags and commits from the GitHub API.
No local clone is required. There is no working tree, so the version is
never marked dirty.

Authentication (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key (PEM content) or GH_APP_ID + GH_APP_PRIVATE_KEY env vars
  3. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY_PATH env vars

Examples:
  GITHUB_TOKEN=ghp_xxx gitstamp remote myorg/myrepo
  gitstamp remote myorg/myrepo --token ghp_xxx --ref main
  gitstamp remote myorg/myrepo --github-app-id 12345 --github-app-key "$APP_PRIVATE_KEY"
  gitstamp remote myorg/myrepo --github-app-id 12345 --github-app-key-path /path/to/key.pem`,
	Args: cobra.ExactArgs(1),
	RunE: remoteRunE,
}

func init() {
	remoteCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	remoteCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	remoteCmd.Flags().StringVar(&flagAppKey, "github-app-key", "", "GitHub App private key PEM content (or set GH_APP_PRIVATE_KEY env var)")
	remoteCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	remoteCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	remoteCmd.Flags().StringVar(&flagRef, "ref", "", "git ref to version: branch, tag, or SHA (default: repo default branch)")
	remoteCmd.Flags().IntVar(&flagMaxTags, "max-tags", 100, "maximum number of matching tags compared against the ref")
	remoteCmd.Flags().StringVar(&flagRemoteConfigPath, "remote-config-path", "", "path to config file in the remote repo (e.g. .github/gitstamp.yml)")

	rootCmd.AddCommand(remoteCmd)
}

func remoteRunE(cmd *cobra.Command, args []string) error {
	owner, repo, err := parseOwnerRepo(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKey:     flagAppKey,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    flagGitHubURL,
		Owner:      owner,
	})
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	svc := ghprovider.NewService(client, owner, repo,
		ghprovider.WithRef(flagRef),
		ghprovider.WithMaxTags(flagMaxTags),
		ghprovider.WithContext(ctx),
		ghprovider.WithLogger(logger),
	)

	cfg, err := loadRemoteConfig(cmd, svc)
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

func parseOwnerRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return parts[0], parts[1], nil
}

// loadRemoteConfig uses a local --config file when given, otherwise the
// config file found in the remote repo, then applies the flag overrides.
func loadRemoteConfig(cmd *cobra.Command, svc *ghprovider.Service) (*config.Config, error) {
	var (
		userCfg *config.Config
		err     error
	)
	if flagConfig != "" {
		userCfg, err = config.LoadFromFile(flagConfig)
	} else {
		userCfg, err = svc.LoadConfig(flagRemoteConfigPath)
	}
	if err != nil {
		return nil, err
	}

	overrides, err := configOverrides(cmd)
	if err != nil {
		return nil, err
	}
	return config.NewBuilder().Add(userCfg).Add(overrides).Build()
}
