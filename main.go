// pattern: Imperative Shell
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"gamesync/internal/builder"
	"gamesync/internal/config"
	"gamesync/internal/discovery"
	"gamesync/internal/instance"
	"gamesync/internal/logging"
	"gamesync/internal/pipeline"
	"gamesync/internal/process"
	"gamesync/internal/report"
)

var version = "dev"

const usageError = "You must pass a source and target directory only."

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, performs one sync and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gamesync", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.StringP("config", "c", "", "config file (default: ~/.config/gamesync/config.yaml)")
	showVersion := fs.Bool("version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gamesync [--config path] <source> <target>\n\n")
		fmt.Fprintf(stderr, "Copies every directory in <source> whose name contains the match token\n")
		fmt.Fprintf(stderr, "into <target>, builds it, and writes a metadata file listing the games.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintf(stdout, "gamesync %s\n", version)
		return 0
	}

	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, usageError)
		fs.Usage()
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logManager, err := logging.NewManager(logging.Config{
		Console:    stderr,
		FilePath:   cfg.Log.File,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.Log.Level,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")

	fl, err := instance.Lock(config.DataDir(""))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer instance.Release(fl)

	if cfg.Build.Enabled {
		if _, err := cfg.BuildTool(); err != nil {
			appLogger.Warn("build tool unavailable, builds will fail", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := pipeline.Run(ctx, pipeline.Options{
		Source:       fs.Arg(0),
		Target:       fs.Arg(1),
		MatchToken:   cfg.MatchToken,
		StripToken:   cfg.StripToken,
		OnCollision:  discovery.CollisionPolicy(cfg.OnCollision),
		MetadataFile: cfg.MetadataFile,
		Build: builder.Config{
			Enabled:   cfg.Build.Enabled,
			Extension: cfg.Build.Extension,
			Command:   cfg.Build.Command,
		},
		Runner: process.NewExecRunner(logManager.For("process")),
		Logs:   logManager,
	})
	if err != nil {
		appLogger.Error("run failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := report.Print(stdout, summary, report.NewStyles(cfg.Theme)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig loads the configuration from path, or the default location.
// Unlike the default location, an explicit path must exist.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); err != nil {
		return config.Config{}, fmt.Errorf("reading config: %w", err)
	}
	return config.LoadFrom(path)
}
