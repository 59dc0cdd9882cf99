package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"artemisctl/pkg/logging"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding a config file path.
const EnvConfigPath = "ARTEMISCTL_CONFIG"

// LoadConfig loads the YAML file at configPath on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	config := GetDefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Info("ConfigLoader", "No config file found at %s, using defaults", configPath)
			return config, nil
		}
		return Config{}, NewConfigurationError(configPath, "io", "failed to read config file", err.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		// config malformed
		return Config{}, NewConfigurationErrorWithDetails(configPath, "parse", "malformed config file", err.Error(),
			[]string{"Check the YAML syntax", "Field names are camelCase, e.g. brokerRoot or downloadTimeout"})
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configPath)
	return config, nil
}
