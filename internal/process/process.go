// pattern: Imperative Shell

package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"gamesync/internal/logging"
)

// Command describes one invocation of an external tool.
type Command struct {
	Name string   // Label used in logs
	Args []string // argv; Args[0] is the binary
	Dir  string   // Working directory for the child only
}

// String returns the argv joined with spaces.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Result is what the child left behind.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs a command to completion. A non-zero exit is reported through
// Result.ExitCode with a nil error; the error is reserved for failures to
// start or wait on the process.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec. Output lines are captured and also
// forwarded to the logger at debug level.
type ExecRunner struct {
	logger *logging.ScopedLogger
}

// NewExecRunner creates a runner that logs child output to logger.
func NewExecRunner(logger *logging.ScopedLogger) *ExecRunner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if len(c.Args) == 0 {
		return Result{ExitCode: -1}, errors.New("process: empty command")
	}

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("stderr pipe: %w", err)
	}

	r.logger.Debug("starting process", "process", c.Name, "command", c.String(), "dir", c.Dir)

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("starting %s: %w", c.Args[0], err)
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.capture(stdout, &outBuf, c.Name, "stdout")
	}()
	go func() {
		defer wg.Done()
		r.capture(stderr, &errBuf, c.Name, "stderr")
	}()

	wg.Wait()
	err = cmd.Wait()

	res := Result{Stdout: outBuf.String(), Stderr: errBuf.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("waiting for %s: %w", c.Args[0], err)
	}
	return res, nil
}

// maxLineSize bounds a single captured output line.
const maxLineSize = 1024 * 1024

// capture reads src until EOF. A line longer than maxLineSize stops line
// splitting; the rest of the stream is still drained into dst so the child
// never blocks on a full pipe.
func (r *ExecRunner) capture(src io.Reader, dst *bytes.Buffer, name, stream string) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		dst.WriteString(line)
		dst.WriteByte('\n')
		r.logger.Debug(line, "stream", stream, "process", name)
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("output not captured line by line", "stream", stream, "process", name, "error", err)
		if _, err := io.Copy(dst, src); err != nil {
			r.logger.Warn("draining output failed", "stream", stream, "process", name, "error", err)
		}
	}
}
