// pattern: Imperative Shell

package builder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gamesync/internal/logging"
	"gamesync/internal/process"
)

// Status is the outcome of a build attempt.
type Status string

const (
	StatusDisabled  Status = "disabled"
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result describes one build attempt. Err is set when the tool could not be
// started; a non-zero exit only sets ExitCode.
type Result struct {
	Status     Status
	SourceFile string
	Command    string
	ExitCode   int
	Stdout     string
	Stderr     string
	Err        error
}

// Config controls which file is built and how.
type Config struct {
	Enabled   bool
	Extension string   // e.g. ".go"
	Command   []string // base argv; the source file name is appended
}

// Builder compiles the code file found at the top of a copied game directory.
type Builder struct {
	cfg    Config
	runner process.Runner
	logger *logging.ScopedLogger
}

// New creates a Builder that runs commands through runner.
func New(cfg Config, runner process.Runner, logger *logging.ScopedLogger) *Builder {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Builder{cfg: cfg, runner: runner, logger: logger}
}

// FindSource returns the name of the first regular file in dir whose name
// ends with ext. Symlinks and directories are skipped. Only the top level of
// dir is read.
func FindSource(dir, ext string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			return entry.Name(), true, nil
		}
	}
	return "", false, nil
}

// Build runs the build command against the first code file in dir with dir as
// the child's working directory. It never returns a fatal error: a missing
// code file is a skip, and start or exit failures are reported in Result.
func (b *Builder) Build(ctx context.Context, dir string) Result {
	if !b.cfg.Enabled {
		return Result{Status: StatusDisabled}
	}

	logger := b.logger.With("dir", dir)

	file, ok, err := FindSource(dir, b.cfg.Extension)
	if err != nil {
		logger.Warn("cannot scan for build source", "error", err)
		return Result{Status: StatusFailed, ExitCode: -1, Err: err}
	}
	if !ok {
		logger.Debug("no source file, skipping build", "extension", b.cfg.Extension)
		return Result{Status: StatusSkipped}
	}

	args := make([]string, 0, len(b.cfg.Command)+1)
	args = append(args, b.cfg.Command...)
	args = append(args, file)
	cmd := process.Command{Name: file, Args: args, Dir: dir}

	logger.Info("building", "command", cmd.String())

	out, err := b.runner.Run(ctx, cmd)
	res := Result{
		SourceFile: file,
		Command:    cmd.String(),
		ExitCode:   out.ExitCode,
		Stdout:     out.Stdout,
		Stderr:     out.Stderr,
		Err:        err,
	}

	switch {
	case err != nil:
		res.Status = StatusFailed
		logger.Warn("build could not run", "command", res.Command, "error", err)
	case out.ExitCode != 0:
		res.Status = StatusFailed
		logger.Warn("build failed", "command", res.Command,
			"exit_code", out.ExitCode, "stderr", strings.TrimSpace(out.Stderr))
	default:
		res.Status = StatusSucceeded
		logger.Info("build succeeded", "command", res.Command)
	}
	return res
}
