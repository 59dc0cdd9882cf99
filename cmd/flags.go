package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"artemisctl/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// provisionFlags holds the command line flags of the provisioning commands.
type provisionFlags struct {
	configPath      string
	version         string
	origin          string
	brokerConfig    string
	installDir      string
	brokerRoot      string
	brokerName      string
	brokerDataDir   string
	candlepinConf   string
	downloadTimeout time.Duration

	verbose bool
	quiet   bool
	clean   bool
}

func (f *provisionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", fmt.Sprintf("YAML config file (env %s)", config.EnvConfigPath))
	fs.StringVar(&f.version, "version-id", config.DefaultVersion, "Artemis release to install")
	fs.StringVar(&f.origin, "origin", config.GetDefaultConfig().Origin, "Base URL to download releases from")
	fs.StringVar(&f.brokerConfig, "broker-config", config.DefaultBrokerConfig, "Replacement broker.xml to install")
	fs.StringVar(&f.installDir, "install-dir", config.DefaultInstallDir, "Directory the release is downloaded to and unpacked in")
	fs.StringVar(&f.brokerRoot, "broker-root", config.DefaultBrokerRoot, "Parent directory of the broker instance")
	fs.StringVar(&f.brokerName, "broker-name", config.DefaultBrokerName, "Name of the broker instance")
	fs.StringVar(&f.brokerDataDir, "broker-data-dir", "", "Broker data directory (default ./data inside the instance)")
	fs.StringVar(&f.candlepinConf, "candlepin-conf", config.DefaultCandlepinConf, "Consumer config to point at the broker; empty skips it")
	fs.DurationVar(&f.downloadTimeout, "download-timeout", config.GetDefaultConfig().DownloadTimeout, "Timeout for the release download")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging and show bin/artemis output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Only print warnings and errors")
}

// load builds the effective configuration: defaults, then the config file,
// then every flag that was set explicitly on the command line.
func (f *provisionFlags) load(cmd *cobra.Command) (config.Config, error) {
	path := f.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}

	fs := cmd.Flags()
	overrides := []struct {
		name  string
		apply func()
	}{
		{"version-id", func() { cfg.Version = f.version }},
		{"origin", func() { cfg.Origin = f.origin }},
		{"broker-config", func() { cfg.BrokerConfig = f.brokerConfig }},
		{"install-dir", func() { cfg.InstallDir = f.installDir }},
		{"broker-root", func() { cfg.BrokerRoot = f.brokerRoot }},
		{"broker-name", func() { cfg.BrokerName = f.brokerName }},
		{"broker-data-dir", func() { cfg.BrokerDataDir = f.brokerDataDir }},
		{"candlepin-conf", func() { cfg.CandlepinConf = f.candlepinConf }},
		{"download-timeout", func() { cfg.DownloadTimeout = f.downloadTimeout }},
	}
	for _, o := range overrides {
		if fs.Changed(o.name) {
			o.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// commandContext returns the command's context, or a background context for
// commands run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
