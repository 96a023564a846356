// Package outputters dispatches a validation report to the formatter the
// configuration selects.
package outputters

import (
	"fmt"
	"io"

	"github.com/dotcommander/mplint/internal/config"
	"github.com/dotcommander/mplint/internal/output"
)

// Outputter handles output formatting
type Outputter struct {
	config *config.Config
	out    io.Writer
}

// NewOutputter creates a new Outputter writing console output to out.
func NewOutputter(config *config.Config, out io.Writer) *Outputter {
	return &Outputter{config: config, out: out}
}

// Format renders the report using the configured format.
func (o *Outputter) Format(report *output.Report) error {
	switch o.config.Format {
	case "console":
		formatter := output.NewConsoleFormatter(o.out, o.config.Quiet, o.config.Verbose, !o.config.NoColor)
		return formatter.Format(report)
	case "json":
		formatter := output.NewJSONFormatter(o.out, true, o.config.Output)
		return formatter.Format(report)
	case "markdown":
		formatter := output.NewMarkdownFormatter(o.config.Output)
		return formatter.Format(report)
	default:
		return fmt.Errorf("unsupported format: %s", o.config.Format)
	}
}
