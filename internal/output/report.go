// Package output renders validation results for the console and for
// machine-readable report files.
package output

import (
	"github.com/dotcommander/mplint/internal/validate"
)

// Report is what the formatters render: the validation result plus the
// context needed to present it.
type Report struct {
	ManifestPath string
	ProjectRoot  string
	Result       validate.Result
}

// pluginGroup holds one plugin's errors in report order.
type pluginGroup struct {
	Plugin string
	Errors []validate.ValidationError
}

// groupByPlugin groups errors by plugin, preserving first-seen plugin
// order and per-plugin error order.
func groupByPlugin(errors []validate.ValidationError) []pluginGroup {
	index := make(map[string]int)
	var groups []pluginGroup
	for _, e := range errors {
		i, ok := index[e.Plugin]
		if !ok {
			i = len(groups)
			index[e.Plugin] = i
			groups = append(groups, pluginGroup{Plugin: e.Plugin})
		}
		groups[i].Errors = append(groups[i].Errors, e)
	}
	return groups
}
