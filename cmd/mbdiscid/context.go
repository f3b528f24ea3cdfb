package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mbdiscid/internal/cdrom"
	"mbdiscid/internal/config"
	"mbdiscid/internal/discid"
	"mbdiscid/internal/logging"
	"mbdiscid/internal/toc"
)

// tocSource reads a raw table of contents; the native linux provider
// satisfies it.
type tocSource interface {
	Available() error
	ReadTOC(ctx context.Context, device string) (toc.TOC, error)
}

// environment supplies the pieces that touch hardware so tests can swap them.
type environment struct {
	providers   func(discid.Options) []discid.Provider
	native      tocSource
	driveStatus func(device string) (cdrom.DriveStatus, error)
}

func defaultEnvironment() environment {
	return environment{
		providers:   discid.Builtin,
		native:      discid.NewLinuxProvider(),
		driveStatus: cdrom.CheckDriveStatus,
	}
}

type commandContext struct {
	program      string
	env          environment
	configFlag   *string
	providerFlag *string
	verboseFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger *slog.Logger
}

func newCommandContext(program string, env environment, configFlag, providerFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		program:      program,
		env:          env,
		configFlag:   configFlag,
		providerFlag: providerFlag,
		verboseFlag:  verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// setupLogger builds the stderr logger once configuration is known.
func (c *commandContext) setupLogger(cmd *cobra.Command) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	verbose := c.verboseFlag != nil && *c.verboseFlag
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr(), verbose)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

func (c *commandContext) log() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

func (c *commandContext) providerName(cfg *config.Config) string {
	if c.providerFlag != nil {
		if name := strings.TrimSpace(*c.providerFlag); name != "" {
			return name
		}
	}
	return cfg.DiscID.Provider
}

func (c *commandContext) providers(cfg *config.Config) []discid.Provider {
	return c.env.providers(discid.Options{CDDiscIDBinary: cfg.DiscID.CDDiscIDBinary})
}

// resolveProvider applies the --provider flag over configuration and returns
// a reader for the selected provider.
func (c *commandContext) resolveProvider() (*discid.Reader, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	provider, err := discid.Resolve(c.providerName(cfg), c.providers(cfg))
	if err != nil {
		return nil, err
	}
	c.log().Debug("provider selected",
		logging.String(logging.FieldProvider, provider.Name()),
	)
	return discid.NewReader(provider, c.log()), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
