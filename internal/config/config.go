package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ORGCHART_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// ORGCHART_PORT -> port, ORGCHART_LAYOUT__WIDTH -> layout.width.
	if err := k.Load(env.Provider("ORGCHART_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "ORGCHART_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists from the file replace the defaults instead of merging into them.
	for key, list := range map[string]*[]string{
		"teams":          &cfg.Teams,
		"import.include": &cfg.Import.Include,
		"import.exclude": &cfg.Import.Exclude,
	} {
		if k.Exists(key) {
			*list = nil
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if len(c.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}
	for _, t := range c.Teams {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("team names must not be blank")
		}
	}
	if !c.HasTeam(c.DefaultTeam) {
		return fmt.Errorf("default_team %q is not one of %v", c.DefaultTeam, c.Teams)
	}

	l := c.Layout
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("layout width and height must be positive")
	}
	if l.MarginTop < 0 || l.MarginRight < 0 || l.MarginBottom < 0 || l.MarginLeft < 0 {
		return fmt.Errorf("layout margins must be non-negative")
	}
	if l.Bounds().UsableWidth() <= 0 || l.Bounds().UsableHeight() < 0 {
		return fmt.Errorf("layout margins leave no room to draw")
	}
	if l.NodeRadius < 0 {
		return fmt.Errorf("layout node_radius must be non-negative")
	}
	return nil
}
