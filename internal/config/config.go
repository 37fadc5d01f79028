package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries startup configuration that does not belong in env vars,
// currently the built-in dropdown option lists per category.
type Config struct {
	Dropdowns map[string][]string `yaml:"dropdowns"`
}

// builtinDropdowns ship with the application; a YAML file can override or
// extend them per deployment.
var builtinDropdowns = map[string][]string{
	"sourcingTypes":  {"Electrical", "Plumbing", "Finishing", "Lighting"},
	"sourcingStores": {"Wilcon Depot", "Handyman", "CW Home Depot", "AllHome", "True Value"},
}

// Load reads the YAML config at path. A missing file is not an error: the
// built-in defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{Dropdowns: make(map[string][]string)}
	for category, values := range builtinDropdowns {
		cfg.Dropdowns[category] = append([]string(nil), values...)
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for category, values := range fileCfg.Dropdowns {
		cfg.Dropdowns[category] = values
	}

	return cfg, nil
}

// DropdownDefaults returns the default option list for a category, or nil
// when the category has no defaults.
func (c *Config) DropdownDefaults(category string) []string {
	return c.Dropdowns[category]
}
