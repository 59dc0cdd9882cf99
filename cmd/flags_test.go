package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"artemisctl/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseFlags runs a throwaway command with f registered and returns it once
// args have been parsed.
func parseFlags(t *testing.T, f *provisionFlags, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{
		Use:  "test",
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	f.register(cmd.Flags())
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return cmd
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artemisctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	f := &provisionFlags{}
	cmd := parseFlags(t, f)

	cfg, err := f.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfig(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	path := writeConfigFile(t, `
brokerName: audit
brokerRoot: /srv/artemis
downloadTimeout: 20s
`)

	f := &provisionFlags{}
	cmd := parseFlags(t, f, "--config", path, "--broker-root", "/data/artemis", "--version-id", "2.6.1")

	cfg, err := f.load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "/data/artemis", cfg.BrokerRoot, "an explicit flag beats the file")
	assert.Equal(t, "2.6.1", cfg.Version, "an explicit flag beats the default")
	assert.Equal(t, "audit", cfg.BrokerName, "an unset flag keeps the file value")
	assert.Equal(t, 20*time.Second, cfg.DownloadTimeout)
	assert.Equal(t, config.DefaultInstallDir, cfg.InstallDir)
}

func TestLoad_ConfigFromEnvironment(t *testing.T) {
	path := writeConfigFile(t, "installDir: /usr/local\n")
	t.Setenv(config.EnvConfigPath, path)

	f := &provisionFlags{}
	cmd := parseFlags(t, f)

	cfg, err := f.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local", cfg.InstallDir)
}

func TestLoad_EmptyFlagOverridesFile(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	path := writeConfigFile(t, "candlepinConf: /etc/candlepin/other.conf\n")

	f := &provisionFlags{}
	cmd := parseFlags(t, f, "--config", path, "--candlepin-conf", "")

	cfg, err := f.load(cmd)
	require.NoError(t, err)
	assert.Empty(t, cfg.CandlepinConf)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	f := &provisionFlags{}
	cmd := parseFlags(t, f, "--version-id", "latest", "--broker-name", "../etc")

	_, err := f.load(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	var verrs config.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, ExitCodeError, getExitCode(err))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	path := writeConfigFile(t, "brokerRoot: [\n")

	f := &provisionFlags{}
	cmd := parseFlags(t, f, "--config", path)

	_, err := f.load(cmd)
	require.Error(t, err)

	var cfgErr *config.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, path, cfgErr.FilePath)
}
