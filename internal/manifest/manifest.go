// Package manifest provides the marketplace.json data model and file I/O.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reference field constants. These are the plugin fields whose entries are
// relative file paths resolved against the project root.
const (
	FieldCommands   = "commands"
	FieldAgents     = "agents"
	FieldMCPServers = "mcpServers"
)

// PathFields lists the reference fields in validation order.
var PathFields = []string{FieldCommands, FieldAgents, FieldMCPServers}

// Owner identifies the marketplace or plugin author.
type Owner struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Metadata contains optional marketplace-level metadata.
type Metadata struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	PluginRoot  string `json:"pluginRoot,omitempty" yaml:"pluginRoot,omitempty"`
}

// Plugin is one entry in the marketplace manifest. Commands, Agents and
// MCPServers hold relative file paths; each list may be absent.
type Plugin struct {
	Name        string   `json:"name" yaml:"name"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Author      *Owner   `json:"author,omitempty" yaml:"author,omitempty"`
	Homepage    string   `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Repository  string   `json:"repository,omitempty" yaml:"repository,omitempty"`
	License     string   `json:"license,omitempty" yaml:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Commands    []string `json:"commands,omitempty" yaml:"commands,omitempty"`
	Agents      []string `json:"agents,omitempty" yaml:"agents,omitempty"`
	MCPServers  []string `json:"mcpServers,omitempty" yaml:"mcpServers,omitempty"`
}

// Paths returns the path list for a reference field. Unknown fields
// return nil.
func (p *Plugin) Paths(field string) []string {
	switch field {
	case FieldCommands:
		return p.Commands
	case FieldAgents:
		return p.Agents
	case FieldMCPServers:
		return p.MCPServers
	}
	return nil
}

// SetPaths replaces the path list for a reference field. A nil or empty
// list removes the field entirely (omitted on marshal).
func (p *Plugin) SetPaths(field string, paths []string) {
	if len(paths) == 0 {
		paths = nil
	}
	switch field {
	case FieldCommands:
		p.Commands = paths
	case FieldAgents:
		p.Agents = paths
	case FieldMCPServers:
		p.MCPServers = paths
	}
}

// Manifest is the marketplace.json document. Plugins defaults to an empty
// list when the field is absent.
type Manifest struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Owner    *Owner    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Plugins  []Plugin  `json:"plugins" yaml:"plugins"`
}

// Parse decodes manifest content. YAML input is accepted for authoring
// convenience; the canonical wire format is JSON.
func Parse(content []byte, path string) (*Manifest, error) {
	var m Manifest
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(content, &m); err != nil {
			return nil, fmt.Errorf("error parsing YAML manifest: %w", err)
		}
		return &m, nil
	}
	if err := json.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("error parsing JSON manifest: %w", err)
	}
	return &m, nil
}

// ParseRaw decodes manifest content into a generic document, using the
// same extension dispatch as Parse. Useful for shape checks that need to
// see fields the typed model would drop.
func ParseRaw(content []byte, path string) (map[string]any, error) {
	var raw map[string]any
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("error parsing YAML manifest: %w", err)
		}
		return raw, nil
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("error parsing JSON manifest: %w", err)
	}
	return raw, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}
	return Parse(content, path)
}

// Save writes the manifest as pretty-printed JSON with 2-space indent and
// a trailing newline, matching the format Claude Code writes itself.
func Save(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing manifest: %w", err)
	}
	return nil
}

// Backup copies the manifest to <path>.backup alongside the original.
// Returns the backup path.
func Backup(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading manifest for backup: %w", err)
	}
	backupPath := path + ".backup"
	if err := os.WriteFile(backupPath, content, 0644); err != nil {
		return "", fmt.Errorf("error writing backup: %w", err)
	}
	return backupPath, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
