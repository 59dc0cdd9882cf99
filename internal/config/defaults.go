package config

import "artemisctl/internal/broker"

const (
	// DefaultVersion is the Artemis release installed when none is given.
	DefaultVersion = "2.4.0"

	DefaultInstallDir    = "/opt"
	DefaultBrokerRoot    = "/var/lib/artemis"
	DefaultBrokerName    = "candlepin"
	DefaultBrokerConfig  = "broker.xml"
	DefaultCandlepinConf = "/etc/candlepin/candlepin.conf"
)

// GetDefaultConfig returns the configuration used when no file or flag
// overrides a value.
func GetDefaultConfig() Config {
	return Config{
		Version:            DefaultVersion,
		Origin:             broker.DefaultOrigin,
		ArchiveURLTemplate: broker.DefaultURLTemplate,
		DownloadTimeout:    broker.DefaultDownloadTimeout,
		InstallDir:         DefaultInstallDir,
		BrokerRoot:         DefaultBrokerRoot,
		BrokerName:         DefaultBrokerName,
		BrokerConfig:       DefaultBrokerConfig,
		CandlepinConf:      DefaultCandlepinConf,
	}
}
