package outputters

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dotcommander/mplint/internal/config"
	"github.com/dotcommander/mplint/internal/output"
	"github.com/dotcommander/mplint/internal/validate"
)

func sampleReport() *output.Report {
	return &output.Report{
		ManifestPath: "marketplace.json",
		ProjectRoot:  "/project",
		Result: validate.Result{
			Valid:            true,
			ValidatedPlugins: 1,
			Stats:            validate.Stats{TotalPaths: 1, ValidPaths: 1},
		},
	}
}

func TestOutputterConsole(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutputter(&config.Config{Format: "console", NoColor: true}, &buf)
	if err := o.Format(sampleReport()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "All references valid") {
		t.Errorf("console output missing all-clear:\n%s", buf.String())
	}
}

func TestOutputterJSON(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutputter(&config.Config{Format: "json"}, &buf)
	if err := o.Format(sampleReport()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"tool": "mplint"`) {
		t.Errorf("json output missing tool field:\n%s", buf.String())
	}
}

func TestOutputterUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutputter(&config.Config{Format: "xml"}, &buf)
	if err := o.Format(sampleReport()); err == nil {
		t.Error("Format() error = nil, want unsupported format error")
	}
}
