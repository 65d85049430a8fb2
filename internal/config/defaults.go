package config

// DefaultTeams are the team tags the club charts are split by.
var DefaultTeams = []string{"TSSM", "JSPM"}

// DefaultImportExcludes are glob patterns skipped when importing a directory.
var DefaultImportExcludes = []string{
	".git/**",
	"node_modules/**",
	"**/*.tmp",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		DataDir:     "data",
		Teams:       append([]string(nil), DefaultTeams...),
		DefaultTeam: DefaultTeams[0],
		Layout: LayoutConfig{
			Width:        960,
			Height:       540,
			MarginTop:    60,
			MarginRight:  40,
			MarginBottom: 60,
			MarginLeft:   40,
			NodeRadius:   18,
		},
		Import: ImportConfig{
			Include: []string{"**/*.json", "**/*.yml", "**/*.yaml"},
			Exclude: append([]string(nil), DefaultImportExcludes...),
		},
	}
}
