// Package launcher starts catalog demos as external processes.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"democat/internal/models"

	"go.uber.org/zap"
)

// ErrEmptyCommand is returned when a target has nothing to run
var ErrEmptyCommand = errors.New("target has no command")

// Environment variables exported to launched demos
const (
	EnvTransition = "DEMOCAT_TRANSITION"
	EnvTarget     = "DEMOCAT_TARGET"
	EnvLabel      = "DEMOCAT_LABEL"
)

// Launcher starts a target with a transition preset
type Launcher interface {
	Launch(ctx context.Context, label string, target models.Target, t Transition) error
}

// Result describes a finished launch
type Result struct {
	Label      string
	Target     models.Target
	Transition Transition
	StartedAt  time.Time
	Duration   time.Duration
	ExitCode   int
	Err        error
}

// Recorder receives every finished launch
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// ExecLauncher runs targets with os/exec
type ExecLauncher struct {
	logger   *zap.Logger
	recorder Recorder
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures an ExecLauncher
type Option func(*ExecLauncher)

// WithRecorder records every launch
func WithRecorder(r Recorder) Option {
	return func(l *ExecLauncher) { l.recorder = r }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *ExecLauncher) { l.logger = logger }
}

// WithStdio overrides the child's standard streams
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *ExecLauncher) {
		l.stdin, l.stdout, l.stderr = stdin, stdout, stderr
	}
}

// NewExec creates a launcher attached to the current terminal
func NewExec(opts ...Option) *ExecLauncher {
	l := &ExecLauncher{
		logger: zap.NewNop(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAvailable reports whether the target's program can be found
func IsAvailable(target models.Target) bool {
	if len(target.Command) == 0 {
		return false
	}
	_, err := exec.LookPath(target.Command[0])
	return err == nil
}

// Command builds the process for target and logs the launch. The caller
// starts it, then reports back through Finish.
func (l *ExecLauncher) Command(ctx context.Context, label string, target models.Target, t Transition) (*exec.Cmd, error) {
	if len(target.Command) == 0 || target.Command[0] == "" {
		return nil, fmt.Errorf("%s: %w", label, ErrEmptyCommand)
	}

	cmd := exec.CommandContext(ctx, target.Command[0], target.Command[1:]...)
	cmd.Dir = target.Dir
	cmd.Env = buildEnv(os.Environ(), label, target, t)

	l.logger.Info("starting "+t.Description()+" transition",
		zap.String("label", label),
		zap.String("target", target.ID),
		zap.Strings("command", target.Command),
	)
	return cmd, nil
}

// Launch runs target in the foreground and waits for it to exit
func (l *ExecLauncher) Launch(ctx context.Context, label string, target models.Target, t Transition) error {
	cmd, err := l.Command(ctx, label, target, t)
	if err != nil {
		return err
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = l.stdin, l.stdout, l.stderr

	started := time.Now()
	runErr := cmd.Run()
	return l.Finish(ctx, label, target, t, started, runErr)
}

// Finish logs and records a launch that ran elsewhere (e.g. handed to the
// terminal UI) and returns runErr wrapped with the label
func (l *ExecLauncher) Finish(ctx context.Context, label string, target models.Target, t Transition, started time.Time, runErr error) error {
	result := Result{
		Label:      label,
		Target:     target,
		Transition: t,
		StartedAt:  started,
		Duration:   time.Since(started),
		ExitCode:   exitCode(runErr),
		Err:        runErr,
	}

	if runErr != nil {
		l.logger.Warn("demo exited with error",
			zap.String("label", label),
			zap.Int("exit_code", result.ExitCode),
			zap.Error(runErr),
		)
	} else {
		l.logger.Debug("demo finished", zap.String("label", label), zap.Duration("duration", result.Duration))
	}

	if l.recorder != nil {
		if err := l.recorder.Record(ctx, result); err != nil {
			l.logger.Warn("failed to record launch", zap.Error(err))
		}
	}

	if runErr != nil {
		return fmt.Errorf("%s: %w", label, runErr)
	}
	return nil
}

// buildEnv returns base plus the target's environment and the transition
// variables, with later values overriding earlier ones
func buildEnv(base []string, label string, target models.Target, t Transition) []string {
	env := append([]string(nil), base...)

	keys := make([]string, 0, len(target.Env))
	for k := range target.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+target.Env[k])
	}

	return append(env,
		EnvTransition+"="+string(t),
		EnvTarget+"="+target.ID,
		EnvLabel+"="+label,
	)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
