// pattern: Functional Core

// Package report renders a run summary for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"gamesync/internal/builder"
	"gamesync/internal/pipeline"
)

// Render formats the summary as a short table: one line per game with its
// build status, followed by the metadata path.
func Render(s pipeline.Summary, styles *Styles) string {
	var sb strings.Builder

	sb.WriteString(styles.Title().Render(fmt.Sprintf("Synced %d game(s)", len(s.Games))))
	sb.WriteString(" ")
	sb.WriteString(styles.Muted().Render(s.Source + " -> " + s.Target))
	sb.WriteString("\n")

	names := make([]string, len(s.Games))
	width := 0
	for i, g := range s.Games {
		names[i] = styles.Name().Render(g.Name)
		width = max(width, ansi.StringWidth(names[i]))
	}

	for i, g := range s.Games {
		pad := strings.Repeat(" ", width-ansi.StringWidth(names[i]))
		fmt.Fprintf(&sb, "  %s%s  %s\n", names[i], pad, status(g.Build, styles))
	}

	if s.MetadataPath != "" {
		sb.WriteString(styles.Muted().Render("metadata: " + s.MetadataPath))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Print writes Render's output to w.
func Print(w io.Writer, s pipeline.Summary, styles *Styles) error {
	_, err := io.WriteString(w, Render(s, styles))
	return err
}

// Plain strips terminal styling from rendered output.
func Plain(rendered string) string {
	return ansi.Strip(rendered)
}

func status(r builder.Result, styles *Styles) string {
	switch r.Status {
	case builder.StatusSucceeded:
		return styles.Success().Render("built " + r.SourceFile)
	case builder.StatusFailed:
		if r.Err != nil {
			return styles.Failure().Render("build error: " + r.Err.Error())
		}
		return styles.Failure().Render(fmt.Sprintf("build failed (exit %d)", r.ExitCode))
	case builder.StatusSkipped:
		return styles.Muted().Render("no source to build")
	case builder.StatusDisabled:
		return styles.Muted().Render("build disabled")
	default:
		return styles.Warning().Render(string(r.Status))
	}
}
