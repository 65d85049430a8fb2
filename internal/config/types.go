package config

import "github.com/ogtechminds/orgchart/internal/hierarchy"

// Config is the top-level orgchart configuration, corresponding to .orgchart.yml.
type Config struct {
	Port            int          `yaml:"port" koanf:"port"`
	DataDir         string       `yaml:"data_dir" koanf:"data_dir"`
	Teams           []string     `yaml:"teams" koanf:"teams"`
	DefaultTeam     string       `yaml:"default_team" koanf:"default_team"`
	AllowAllOrigins bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Layout          LayoutConfig `yaml:"layout" koanf:"layout"`
	Import          ImportConfig `yaml:"import" koanf:"import"`
}

// LayoutConfig is the drawing rectangle charts are laid out in.
type LayoutConfig struct {
	Width        float64 `yaml:"width" koanf:"width"`
	Height       float64 `yaml:"height" koanf:"height"`
	MarginTop    float64 `yaml:"margin_top" koanf:"margin_top"`
	MarginRight  float64 `yaml:"margin_right" koanf:"margin_right"`
	MarginBottom float64 `yaml:"margin_bottom" koanf:"margin_bottom"`
	MarginLeft   float64 `yaml:"margin_left" koanf:"margin_left"`
	NodeRadius   float64 `yaml:"node_radius" koanf:"node_radius"`
}

// Bounds converts the layout settings into hierarchy bounds.
func (l LayoutConfig) Bounds() hierarchy.Bounds {
	return hierarchy.Bounds{
		Width:        l.Width,
		Height:       l.Height,
		MarginTop:    l.MarginTop,
		MarginRight:  l.MarginRight,
		MarginBottom: l.MarginBottom,
		MarginLeft:   l.MarginLeft,
	}
}

// ImportConfig holds glob filters applied when importing member files
// from a directory.
type ImportConfig struct {
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// HasTeam reports whether team is one of the configured team tags.
func (c *Config) HasTeam(team string) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}
