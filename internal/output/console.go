package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleFormatter formats a validation report for console display,
// grouped by plugin.
type ConsoleFormatter struct {
	quiet     bool
	verbose   bool
	colorize  bool
	startTime time.Time
	out       io.Writer
}

// NewConsoleFormatter creates a new ConsoleFormatter writing to out.
func NewConsoleFormatter(out io.Writer, quiet, verbose, colorize bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:     quiet,
		verbose:   verbose,
		colorize:  colorize,
		startTime: time.Now(),
		out:       out,
	}
}

// Format renders the report.
func (f *ConsoleFormatter) Format(report *Report) error {
	if f.quiet {
		// Only the exit code speaks in quiet mode.
		return nil
	}

	f.printGroups(report)
	f.printSummary(report)
	return nil
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (f *ConsoleFormatter) printGroups(report *Report) {
	red := f.style("9")
	gray := f.style("7")

	for _, group := range groupByPlugin(report.Result.Errors) {
		name := group.Plugin
		if name == "" {
			name = report.ManifestPath
		}
		fmt.Fprintf(f.out, "%s %s\n", red.Render("✗"), name)
		for _, e := range group.Errors {
			if e.Field != "" {
				fmt.Fprintf(f.out, "    ✘ %s: %s\n", gray.Render(e.Field), e.Message)
			} else {
				fmt.Fprintf(f.out, "    ✘ %s\n", e.Message)
			}
		}
	}
}

func (f *ConsoleFormatter) printSummary(report *Report) {
	result := report.Result

	if result.Valid {
		style := f.style("10").Bold(f.colorize)
		fmt.Fprintf(f.out, "%s\n", style.Render("✓ All references valid"))
		if f.verbose {
			fmt.Fprintf(f.out, "%d plugins, %d paths checked (%v)\n",
				result.ValidatedPlugins, result.Stats.TotalPaths,
				time.Since(f.startTime).Round(time.Millisecond))
		}
		return
	}

	fmt.Fprintf(f.out, "\n%d/%d paths valid, %d missing across %d plugins (%v)\n",
		result.Stats.ValidPaths, result.Stats.TotalPaths,
		result.Stats.InvalidPaths, result.ValidatedPlugins,
		time.Since(f.startTime).Round(time.Millisecond))
}
