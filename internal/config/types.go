package config

import "time"

// Config is the top-level configuration structure for artemisctl.
// Every field can also be set with the matching command line flag, which
// takes precedence over the file.
type Config struct {
	// Version is the Artemis release to install.
	Version string `yaml:"version"`
	// Origin is the base URL releases are downloaded from.
	Origin string `yaml:"origin"`
	// ArchiveURLTemplate renders the download URL from .Origin, .Version and
	// .Package. Sprig functions are available.
	ArchiveURLTemplate string `yaml:"archiveURLTemplate,omitempty"`
	// DownloadTimeout bounds the archive download.
	DownloadTimeout time.Duration `yaml:"downloadTimeout"`

	InstallDir    string `yaml:"installDir"`    // Where releases are cached and unpacked
	BrokerRoot    string `yaml:"brokerRoot"`    // Parent directory of broker instances
	BrokerName    string `yaml:"brokerName"`    // Instance directory name
	BrokerConfig  string `yaml:"brokerConfig"`  // Replacement broker.xml template
	BrokerDataDir string `yaml:"brokerDataDir"` // Data directory; empty means ./data inside the instance

	// CandlepinConf is the consumer config to repoint. Empty skips the step.
	CandlepinConf string `yaml:"candlepinConf"`
}
