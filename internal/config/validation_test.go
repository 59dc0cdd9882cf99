package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, GetDefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "empty version",
			mutate:    func(c *Config) { c.Version = "" },
			wantField: "version",
		},
		{
			name:      "non semver version",
			mutate:    func(c *Config) { c.Version = "latest" },
			wantField: "version",
		},
		{
			name:      "partial version",
			mutate:    func(c *Config) { c.Version = "2.4" },
			wantField: "version",
		},
		{
			name:      "empty install dir",
			mutate:    func(c *Config) { c.InstallDir = " " },
			wantField: "installDir",
		},
		{
			name:      "empty broker root",
			mutate:    func(c *Config) { c.BrokerRoot = "" },
			wantField: "brokerRoot",
		},
		{
			name:      "empty broker config",
			mutate:    func(c *Config) { c.BrokerConfig = "" },
			wantField: "brokerConfig",
		},
		{
			name:      "empty broker name",
			mutate:    func(c *Config) { c.BrokerName = "" },
			wantField: "brokerName",
		},
		{
			name:      "broker name with separator",
			mutate:    func(c *Config) { c.BrokerName = "a/b" },
			wantField: "brokerName",
		},
		{
			name:      "broker name dot dot",
			mutate:    func(c *Config) { c.BrokerName = ".." },
			wantField: "brokerName",
		},
		{
			name:      "zero timeout",
			mutate:    func(c *Config) { c.DownloadTimeout = 0 },
			wantField: "downloadTimeout",
		},
		{
			name:      "broken template",
			mutate:    func(c *Config) { c.ArchiveURLTemplate = "{{ .Origin" },
			wantField: "archiveURLTemplate",
		},
		{
			name:      "missing origin",
			mutate:    func(c *Config) { c.Origin = "" },
			wantField: "origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Version = "x"
	cfg.BrokerName = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "field 'version'")
	assert.Contains(t, err.Error(), "field 'brokerName'")
}

func TestValidate_EmptyDataDirAllowed(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.BrokerDataDir = ""
	cfg.CandlepinConf = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "no validation errors", errs.Error())
	assert.False(t, errs.HasErrors())

	errs.Add("", "plain message")
	assert.Equal(t, "plain message", errs.Error())
	assert.True(t, errs.HasErrors())
}
