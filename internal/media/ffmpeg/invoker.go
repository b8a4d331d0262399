package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"linecut/internal/logging"
	"linecut/internal/services"
)

// Runner executes an external command and blocks until it exits. Injected so
// tests can capture argument sets without an ffmpeg binary present.
type Runner func(ctx context.Context, name string, args ...string) error

// DefaultRunner shells out via exec.CommandContext, folding combined output
// into the returned error on non-zero exit.
func DefaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Invoker builds and executes ffmpeg argument sets for clip extraction,
// cover capture, and subtitle demuxing.
type Invoker struct {
	binary string
	run    Runner
	logger *slog.Logger
}

// Option customizes an Invoker.
type Option func(*Invoker)

// WithRunner overrides subprocess execution.
func WithRunner(run Runner) Option {
	return func(i *Invoker) {
		if run != nil {
			i.run = run
		}
	}
}

// WithLogger attaches a logger for command-level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Invoker) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New constructs an Invoker for the given ffmpeg binary.
func New(binary string, opts ...Option) *Invoker {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	invoker := &Invoker{
		binary: binary,
		run:    DefaultRunner,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(invoker)
	}
	return invoker
}

// Binary returns the configured ffmpeg binary path.
func (i *Invoker) Binary() string {
	return i.binary
}

func (i *Invoker) exec(ctx context.Context, operation string, args []string) error {
	i.logger.Debug("ffmpeg invocation",
		logging.String("operation", operation),
		logging.String("binary", i.binary),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := i.run(ctx, i.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", operation, "command failed", err)
	}
	return nil
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
