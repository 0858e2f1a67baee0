// pattern: Imperative Shell

// Package pipeline runs one sync: discover game directories, copy each into
// the target root, build it, and record what was processed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gamesync/internal/builder"
	"gamesync/internal/copier"
	"gamesync/internal/discovery"
	"gamesync/internal/logging"
	"gamesync/internal/metadata"
	"gamesync/internal/process"
)

// Options configures a run. Source and Target may be relative to the current
// working directory.
type Options struct {
	Source       string
	Target       string
	MatchToken   string
	StripToken   string
	OnCollision  discovery.CollisionPolicy
	MetadataFile string
	Build        builder.Config
	Runner       process.Runner
	Logs         logging.LoggerProvider
}

// GameResult is what happened to one matched directory.
type GameResult struct {
	Name        string
	Source      string
	Destination string
	Build       builder.Result
}

// Summary describes a completed run.
type Summary struct {
	Source       string
	Target       string
	MetadataPath string
	Games        []GameResult
}

// Names returns the processed output names in order.
func (s Summary) Names() []string {
	names := make([]string, len(s.Games))
	for i, g := range s.Games {
		names[i] = g.Name
	}
	return names
}

// BuildFailures counts games whose build was attempted and failed.
func (s Summary) BuildFailures() int {
	n := 0
	for _, g := range s.Games {
		if g.Build.Status == builder.StatusFailed {
			n++
		}
	}
	return n
}

// Run executes the sync. Filesystem errors abort the run and are returned;
// directories copied before the failure are left in place. Build failures
// are recorded in the Summary and never abort.
func Run(ctx context.Context, opts Options) (Summary, error) {
	logs := opts.Logs
	if logs == nil {
		logs = nopProvider{}
	}
	logger := logs.For("pipeline")

	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving source: %w", err)
	}
	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving target: %w", err)
	}
	summary := Summary{Source: source, Target: target}

	scanner := discovery.NewScanner(opts.MatchToken, opts.StripToken, logs.For("discovery"))
	dirs, err := scanner.Scan(source)
	if err != nil {
		return summary, err
	}

	policy := opts.OnCollision
	if policy == "" {
		policy = discovery.CollisionFail
	}
	dirs, err = discovery.ResolveCollisions(dirs, policy, metadata.ReservedNames(opts.MetadataFile)...)
	if err != nil {
		return summary, err
	}
	dests := make([]string, len(dirs))
	for i, dir := range dirs {
		if dests[i], err = childPath(target, dir.Name); err != nil {
			return summary, err
		}
	}
	logger.Info("discovered game directories", "count", len(dirs), "source", source)

	if err := ensureDir(target); err != nil {
		return summary, err
	}

	runner := opts.Runner
	if runner == nil {
		runner = process.NewExecRunner(logs.For("process"))
	}

	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dest := dests[i]
		logs.For("copier").Info("copying", "from", dir.Path, "to", dest)
		if err := copier.CopyOverwrite(dir.Path, dest); err != nil {
			return summary, err
		}

		b := builder.New(opts.Build, runner, logs.For("build."+dir.Name))
		summary.Games = append(summary.Games, GameResult{
			Name:        dir.Name,
			Source:      dir.Path,
			Destination: dest,
			Build:       b.Build(ctx, dest),
		})
	}

	path, err := metadata.Write(target, opts.MetadataFile, summary.Names())
	if err != nil {
		return summary, err
	}
	summary.MetadataPath = path

	logger.Info("run complete", "games", len(summary.Games), "build_failures", summary.BuildFailures(), "metadata", path)
	return summary, nil
}

// ensureDir creates dir without creating parents. An existing directory is
// accepted.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, 0755)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrExist) {
		info, statErr := os.Stat(dir)
		if statErr == nil && info.IsDir() {
			return nil
		}
		return fmt.Errorf("target %s exists and is not a directory", dir)
	}
	return fmt.Errorf("creating target: %w", err)
}

// childPath joins name to root and rejects any result that is not a direct
// child of root, since the destination is removed before copying.
func childPath(root, name string) (string, error) {
	if !discovery.ValidName(name) {
		return "", fmt.Errorf("invalid output name %q", name)
	}
	dest := filepath.Join(root, name)
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel != name {
		return "", fmt.Errorf("output name %q escapes target %s", name, root)
	}
	return dest, nil
}

type nopProvider struct{}

func (nopProvider) For(string) *logging.ScopedLogger { return logging.NopLogger() }
