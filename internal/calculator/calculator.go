package calculator

import (
	"io"
	"log/slog"
	"os"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/config"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
)

// HostResolver returns the name of the build host.
type HostResolver func() (string, error)

// VersionCalculator gathers facts from a git.Service and resolves the
// version from them.
type VersionCalculator struct {
	svc    git.Service
	host   HostResolver
	logger *slog.Logger
}

// Option configures a VersionCalculator.
type Option func(*VersionCalculator)

// WithLogger sets the logger used to report absent facts.
func WithLogger(l *slog.Logger) Option {
	return func(c *VersionCalculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHostResolver replaces os.Hostname.
func WithHostResolver(h HostResolver) Option {
	return func(c *VersionCalculator) {
		if h != nil {
			c.host = h
		}
	}
}

// NewVersionCalculator creates a VersionCalculator over svc. A nil svc is
// treated as git.NoRepository.
func NewVersionCalculator(svc git.Service, opts ...Option) *VersionCalculator {
	if svc == nil {
		svc = git.NoRepository{}
	}
	c := &VersionCalculator{
		svc:    svc,
		host:   os.Hostname,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Gather queries every fact. Absent facts are logged and left absent.
func (c *VersionCalculator) Gather(pattern string) Facts {
	var facts Facts

	if d, ok := c.svc.Describe(pattern); ok {
		facts.Describe = opt.Of(d)
	} else {
		c.logger.Debug("no describe result, using empty describe", "pattern", pattern)
	}

	if head, ok := c.svc.Head(); ok {
		facts.Head = opt.Of(head)
	} else {
		c.logger.Debug("no HEAD commit")
	}

	if branch, ok := c.svc.Branch(); ok {
		facts.Branch = opt.Of(branch)
	} else {
		c.logger.Debug("no branch")
	}

	if depth, ok := c.svc.CommitDepth(); ok {
		facts.CommitDepth = opt.Of(depth)
	} else {
		c.logger.Debug("no commit depth")
	}

	if host, err := c.host(); err == nil && host != "" {
		facts.Host = opt.Of(host)
	} else {
		c.logger.Debug("host name unresolvable", "error", err)
	}

	return facts
}

// Calculate gathers facts using the configured tag pattern and resolves
// the version.
func (c *VersionCalculator) Calculate(cfg *config.Config) (VersionResult, error) {
	facts := c.Gather(cfg.Pattern())
	result, err := Resolve(cfg, facts)
	if err != nil {
		return VersionResult{}, err
	}
	c.logger.Debug("resolved version",
		"version", result.Version.ExtendedString(),
		"describe", result.Describe.String())
	return result, nil
}
