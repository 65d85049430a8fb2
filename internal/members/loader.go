package members

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// memberList is the {"members": [...]} envelope the club API returns.
type memberList struct {
	Members []Member `json:"members" yaml:"members"`
}

// ParseJSON decodes either a {"members": [...]} envelope or a bare array.
func ParseJSON(data []byte) ([]Member, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var ms []Member
		if err := json.Unmarshal(trimmed, &ms); err != nil {
			return nil, fmt.Errorf("decoding member array: %w", err)
		}
		return ms, nil
	}
	var env memberList
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decoding member list: %w", err)
	}
	return env.Members, nil
}

// ParseYAML decodes either a members: mapping or a bare sequence.
func ParseYAML(data []byte) ([]Member, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	top := doc.Content[0]
	if top.Kind == yaml.SequenceNode {
		var ms []Member
		if err := top.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decoding member sequence: %w", err)
		}
		return ms, nil
	}
	var env memberList
	if err := top.Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding member list: %w", err)
	}
	return env.Members, nil
}

// LoadFile reads members from a .json, .yml or .yaml file.
func LoadFile(path string) ([]Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var ms []Member
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		ms, err = ParseJSON(data)
	case ".yml", ".yaml":
		ms, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported member file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

// Validate checks a member against the configured team tags.
func Validate(m Member, teams []string) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.Team == "" {
		return fmt.Errorf("team is required")
	}
	known := false
	for _, t := range teams {
		if t == m.Team {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown team %q", m.Team)
	}
	if m.ID != "" && m.ParentID == m.ID {
		return fmt.Errorf("member cannot report to itself")
	}
	return nil
}
