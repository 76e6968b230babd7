// Configuration loading for the CLI. config.yaml lives in the config
// directory; flags override file values, which override environment
// variables and platform defaults.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// configFileName is the name of the configuration file inside the config
// directory.
const configFileName = "config.yaml"

// configFile holds the structure written to config.yaml on init.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
	Locale  string `yaml:"locale,omitempty"`
}

// loadConfig resolves the effective types.Config from flags, config.yaml,
// environment variables, and defaults.
func loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(configDir, configFileName))
	v.SetDefault("backend", types.BackendSQLite)
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; init has not run yet.
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return types.Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString("data_dir"))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving data dir: %w", err)
	}

	locale := flags.locale
	if locale == "" {
		locale = v.GetString("locale")
	}

	return types.Config{
		Backend: v.GetString("backend"),
		DataDir: dataDir,
		Locale:  locale,
	}, nil
}

// writeConfigIfMissing creates config.yaml with the given values if the
// file does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
