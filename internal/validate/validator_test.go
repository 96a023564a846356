package validate

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dotcommander/mplint/internal/manifest"
)

func TestValidateDataScenarios(t *testing.T) {
	tests := []struct {
		name        string
		m           *manifest.Manifest
		fs          MapFS
		wantValid   bool
		wantErrors  int
		wantPlugins int
		wantStats   Stats
	}{
		{
			name: "single missing command",
			m: &manifest.Manifest{Plugins: []manifest.Plugin{
				{Name: "p", Commands: []string{"./missing.md"}},
			}},
			fs:          MapFS{},
			wantValid:   false,
			wantErrors:  1,
			wantPlugins: 1,
			wantStats:   Stats{TotalPaths: 1, ValidPaths: 0, InvalidPaths: 1},
		},
		{
			name: "plugin with no path fields",
			m: &manifest.Manifest{Plugins: []manifest.Plugin{
				{Name: "p", Description: "x"},
			}},
			fs:          MapFS{},
			wantValid:   true,
			wantErrors:  0,
			wantPlugins: 1,
			wantStats:   Stats{},
		},
		{
			name: "two plugins invalid in different fields",
			m: &manifest.Manifest{Plugins: []manifest.Plugin{
				{Name: "a", Commands: []string{"./gone.md"}},
				{Name: "b", Agents: []string{"./also-gone.md"}},
			}},
			fs:          MapFS{},
			wantValid:   false,
			wantErrors:  2,
			wantPlugins: 2,
			wantStats:   Stats{TotalPaths: 2, ValidPaths: 0, InvalidPaths: 2},
		},
		{
			name: "one valid one invalid across plugins",
			m: &manifest.Manifest{Plugins: []manifest.Plugin{
				{Name: "a", Commands: []string{"./commands/good.md"}},
				{Name: "b", Agents: []string{"./agents/bad.md"}},
			}},
			fs:          MapFS{filepath.Join("/root", "./commands/good.md"): true},
			wantValid:   false,
			wantErrors:  1,
			wantPlugins: 2,
			wantStats:   Stats{TotalPaths: 2, ValidPaths: 1, InvalidPaths: 1},
		},
		{
			name:        "empty manifest",
			m:           &manifest.Manifest{},
			fs:          MapFS{},
			wantValid:   true,
			wantErrors:  0,
			wantPlugins: 0,
			wantStats:   Stats{},
		},
		{
			name: "all three fields checked",
			m: &manifest.Manifest{Plugins: []manifest.Plugin{
				{
					Name:       "full",
					Commands:   []string{"./c.md"},
					Agents:     []string{"./a.md"},
					MCPServers: []string{"./m.json"},
				},
			}},
			fs: MapFS{
				filepath.Join("/root", "./c.md"):   true,
				filepath.Join("/root", "./a.md"):   true,
				filepath.Join("/root", "./m.json"): true,
			},
			wantValid:   true,
			wantErrors:  0,
			wantPlugins: 1,
			wantStats:   Stats{TotalPaths: 3, ValidPaths: 3, InvalidPaths: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewWithFS(tt.fs)
			result := v.ValidateData(tt.m, "/root")

			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Valid, tt.wantValid)
			}
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("len(Errors) = %d, want %d", len(result.Errors), tt.wantErrors)
				for _, e := range result.Errors {
					t.Logf("  - %s/%s: %s", e.Plugin, e.Field, e.Message)
				}
			}
			if result.ValidatedPlugins != tt.wantPlugins {
				t.Errorf("ValidatedPlugins = %d, want %d", result.ValidatedPlugins, tt.wantPlugins)
			}
			if result.Stats != tt.wantStats {
				t.Errorf("Stats = %+v, want %+v", result.Stats, tt.wantStats)
			}
		})
	}
}

func TestValidateDataErrorDetails(t *testing.T) {
	m := &manifest.Manifest{Plugins: []manifest.Plugin{
		{Name: "p", Commands: []string{"./missing.md"}},
	}}
	result := NewWithFS(MapFS{}).ValidateData(m, "/root")

	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
	}
	err := result.Errors[0]
	if err.Plugin != "p" {
		t.Errorf("Plugin = %q, want %q", err.Plugin, "p")
	}
	if err.Field != manifest.FieldCommands {
		t.Errorf("Field = %q, want %q", err.Field, manifest.FieldCommands)
	}
	if err.Path != "./missing.md" {
		t.Errorf("Path = %q, want %q", err.Path, "./missing.md")
	}
	if err.Message != "File does not exist: ./missing.md" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestValidateDataErrorOrder(t *testing.T) {
	// Plugins in manifest order; commands before agents before mcpServers.
	m := &manifest.Manifest{Plugins: []manifest.Plugin{
		{Name: "first", MCPServers: []string{"./m.json"}, Agents: []string{"./a.md"}, Commands: []string{"./c1.md", "./c2.md"}},
		{Name: "second", Commands: []string{"./c3.md"}},
	}}
	result := NewWithFS(MapFS{}).ValidateData(m, "/root")

	var got []string
	for _, e := range result.Errors {
		got = append(got, e.Plugin+"/"+e.Field+"/"+e.Path)
	}
	want := []string{
		"first/commands/./c1.md",
		"first/commands/./c2.md",
		"first/agents/./a.md",
		"first/mcpServers/./m.json",
		"second/commands/./c3.md",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("error order = %v, want %v", got, want)
	}
}

func TestValidateDataIdempotent(t *testing.T) {
	m := &manifest.Manifest{Plugins: []manifest.Plugin{
		{Name: "a", Commands: []string{"./x.md"}, Agents: []string{"./y.md"}},
	}}
	fs := MapFS{filepath.Join("/root", "./x.md"): true}
	v := NewWithFS(fs)

	first := v.ValidateData(m, "/root")
	second := v.ValidateData(m, "/root")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between runs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidateDataDoesNotMutateInput(t *testing.T) {
	m := &manifest.Manifest{Plugins: []manifest.Plugin{
		{Name: "a", Commands: []string{"./x.md"}},
	}}
	NewWithFS(MapFS{}).ValidateData(m, "/root")

	if len(m.Plugins) != 1 || len(m.Plugins[0].Commands) != 1 || m.Plugins[0].Commands[0] != "./x.md" {
		t.Errorf("input manifest was mutated: %+v", m)
	}
}

func TestValidateDataNilManifest(t *testing.T) {
	result := NewWithFS(MapFS{}).ValidateData(nil, "/root")
	if !result.Valid || result.ValidatedPlugins != 0 || result.Stats.TotalPaths != 0 {
		t.Errorf("nil manifest result = %+v, want valid empty result", result)
	}
}

func TestValidateFile(t *testing.T) {
	t.Run("missing manifest file", func(t *testing.T) {
		result := New().ValidateFile(filepath.Join(t.TempDir(), "marketplace.json"), t.TempDir())
		if result.Valid {
			t.Error("Valid = true, want false")
		}
		if len(result.Errors) != 1 {
			t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
		}
		if result.ValidatedPlugins != 0 {
			t.Errorf("ValidatedPlugins = %d, want 0", result.ValidatedPlugins)
		}
		if result.Stats != (Stats{}) {
			t.Errorf("Stats = %+v, want zeroed", result.Stats)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "marketplace.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		result := New().ValidateFile(path, t.TempDir())
		if result.Valid || len(result.Errors) != 1 {
			t.Errorf("result = %+v, want single parse error", result)
		}
		if result.Errors[0].Path != path {
			t.Errorf("error Path = %q, want manifest path %q", result.Errors[0].Path, path)
		}
	})

	t.Run("real filesystem round trip", func(t *testing.T) {
		root := t.TempDir()
		if err := os.MkdirAll(filepath.Join(root, "commands"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(root, "commands", "greet.md"), []byte("# greet\n"), 0644); err != nil {
			t.Fatal(err)
		}
		manifestPath := filepath.Join(root, "marketplace.json")
		content := `{"plugins":[{"name":"p","commands":["./commands/greet.md","./commands/gone.md"]}]}`
		if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		result := New().ValidateFile(manifestPath, root)
		if result.Valid {
			t.Error("Valid = true, want false")
		}
		want := Stats{TotalPaths: 2, ValidPaths: 1, InvalidPaths: 1}
		if result.Stats != want {
			t.Errorf("Stats = %+v, want %+v", result.Stats, want)
		}
		if len(result.Errors) != 1 || result.Errors[0].Path != "./commands/gone.md" {
			t.Errorf("Errors = %+v, want one error for ./commands/gone.md", result.Errors)
		}
	})
}
