// Config loading for the txlens CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# txlens configuration

sampler:
  # Node budget for sampled graphs. 0 disables sampling.
  max_nodes: 2000
  # Share of the budget per classification; must sum to at most 1.
  proportions:
    illicit: 0.2
    licit: 0.3
    unknown: 0.5
  # Absolute per-class ceilings. 0 means no cap.
  hard_caps:
    illicit: 500
    licit: 750
    unknown: 1500
  # Partition-scan ceiling. 0 scans everything.
  max_examination_rows: 50000

limits:
  # Inputs larger than this are rejected before parsing.
  max_input_size_bytes: 268435456
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper and maps it onto the pipeline configuration. A missing
// config.yaml yields the defaults.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml is not an error; defaults apply.
	}

	cfg := types.Config{
		MaxSampleNodes: v.GetInt("sampler.max_nodes"),
		ClassProportions: types.Proportions{
			Illicit: v.GetFloat64("sampler.proportions.illicit"),
			Licit:   v.GetFloat64("sampler.proportions.licit"),
			Unknown: v.GetFloat64("sampler.proportions.unknown"),
		},
		PerClassHardCaps: types.Caps{
			Illicit: v.GetInt("sampler.hard_caps.illicit"),
			Licit:   v.GetInt("sampler.hard_caps.licit"),
			Unknown: v.GetInt("sampler.hard_caps.unknown"),
		},
		MaxExaminationRows: v.GetInt("sampler.max_examination_rows"),
		MaxInputSizeBytes:  v.GetInt64("limits.max_input_size_bytes"),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setConfigDefaults seeds Viper with the built-in defaults so a partial
// config.yaml only overrides what it names.
func setConfigDefaults(v *viper.Viper) {
	defaults := types.DefaultConfig()
	v.SetDefault("sampler.max_nodes", defaults.MaxSampleNodes)
	v.SetDefault("sampler.proportions.illicit", defaults.ClassProportions.Illicit)
	v.SetDefault("sampler.proportions.licit", defaults.ClassProportions.Licit)
	v.SetDefault("sampler.proportions.unknown", defaults.ClassProportions.Unknown)
	v.SetDefault("sampler.hard_caps.illicit", defaults.PerClassHardCaps.Illicit)
	v.SetDefault("sampler.hard_caps.licit", defaults.PerClassHardCaps.Licit)
	v.SetDefault("sampler.hard_caps.unknown", defaults.PerClassHardCaps.Unknown)
	v.SetDefault("sampler.max_examination_rows", defaults.MaxExaminationRows)
	v.SetDefault("limits.max_input_size_bytes", defaults.MaxInputSizeBytes)
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
