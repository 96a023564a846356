package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/mplint/internal/validate"
)

// JSONFormatter formats a validation report as JSON.
type JSONFormatter struct {
	indent     bool
	outputFile string
	out        io.Writer
}

// NewJSONFormatter creates a new JSONFormatter. When outputFile is empty
// the report goes to out.
func NewJSONFormatter(out io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		indent:     indent,
		outputFile: outputFile,
		out:        out,
	}
}

// JSONReport is the machine-readable report shape.
type JSONReport struct {
	Tool      string          `json:"tool"`
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	Manifest  string          `json:"manifest"`
	Root      string          `json:"root"`
	Result    validate.Result `json:"result"`
}

// Format renders the report.
func (f *JSONFormatter) Format(report *Report) error {
	jsonReport := JSONReport{
		Tool:      "mplint",
		Version:   "1.0.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Manifest:  report.ManifestPath,
		Root:      report.ProjectRoot,
		Result:    report.Result,
	}

	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(jsonReport, "", "  ")
	} else {
		data, err = json.Marshal(jsonReport)
	}
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	data = append(data, '\n')

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, data, 0644); err != nil {
			return fmt.Errorf("error writing report file: %w", err)
		}
		return nil
	}

	_, err = f.out.Write(data)
	return err
}
