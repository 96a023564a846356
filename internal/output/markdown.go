package output

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// MarkdownFormatter formats a validation report as a Markdown file.
type MarkdownFormatter struct {
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{outputFile: outputFile}
}

// Format renders the report.
func (f *MarkdownFormatter) Format(report *Report) error {
	var builder strings.Builder

	builder.WriteString("# Marketplace Validation Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Manifest:** %s\n\n", report.ManifestPath))
	builder.WriteString(fmt.Sprintf("**Root:** %s\n\n", report.ProjectRoot))

	result := report.Result
	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Count |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Plugins | %d |\n", result.ValidatedPlugins))
	builder.WriteString(fmt.Sprintf("| Paths Checked | %d |\n", result.Stats.TotalPaths))
	builder.WriteString(fmt.Sprintf("| Valid | %d |\n", result.Stats.ValidPaths))
	builder.WriteString(fmt.Sprintf("| Missing | %d |\n", result.Stats.InvalidPaths))
	builder.WriteString("\n")

	if result.Valid {
		builder.WriteString("All references valid.\n")
	} else {
		builder.WriteString("## Missing References\n\n")
		for _, group := range groupByPlugin(result.Errors) {
			name := group.Plugin
			if name == "" {
				name = report.ManifestPath
			}
			builder.WriteString(fmt.Sprintf("### %s\n\n", name))
			for _, e := range group.Errors {
				if e.Field != "" {
					builder.WriteString(fmt.Sprintf("- `%s`: %s\n", e.Field, e.Message))
				} else {
					builder.WriteString(fmt.Sprintf("- %s\n", e.Message))
				}
			}
			builder.WriteString("\n")
		}
	}

	if err := os.WriteFile(f.outputFile, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}
