package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"linecut/internal/config"
	"linecut/internal/discovery"
	"linecut/internal/logging"
	"linecut/internal/media/ffmpeg"
	"linecut/internal/media/ffprobe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	})
	return c.logger, c.loggerErr
}

// newInvoker builds the ffmpeg invoker from the configured binary.
func (c *commandContext) newInvoker(logger *slog.Logger) (*ffmpeg.Invoker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ffmpeg.New(cfg.Tools.FFmpeg, ffmpeg.WithLogger(logger)), nil
}

// newDiscoverer wires ffprobe inspection and embedded-track extraction into
// a subtitle discoverer rooted at the configured media root.
func (c *commandContext) newDiscoverer(invoker *ffmpeg.Invoker, logger *slog.Logger, overrides map[string]string) (*discovery.Discoverer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	probe := func(ctx context.Context, video string) ([]ffprobe.Stream, error) {
		result, err := ffprobe.Inspect(ctx, cfg.Tools.FFprobe, video)
		if err != nil {
			return nil, err
		}
		return result.SubtitleStreams(), nil
	}
	opts := []discovery.Option{discovery.WithLogger(logger)}
	if len(overrides) > 0 {
		opts = append(opts, discovery.WithVideoOverrides(overrides))
	}
	return discovery.New(cfg.Paths.MediaRoot, cfg.Paths.CacheDir, probe, invoker.ExtractSubtitle, opts...), nil
}
