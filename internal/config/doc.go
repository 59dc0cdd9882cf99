// Package config provides configuration management for artemisctl.
//
// Configuration comes from three layers, lowest precedence first:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. An optional YAML file (--config flag or ARTEMISCTL_CONFIG)
//  3. Command line flags that were explicitly set
//
// A missing file is not an error; the defaults are used. A malformed file,
// or one with unknown fields, yields a *ConfigurationError.
//
// # Configuration Structure
//
//	version: "2.4.0"                      # Artemis release to install
//	origin: "https://archive.apache.org/dist/activemq/activemq-artemis"
//	archiveURLTemplate: '{{ .Origin | trimSuffix "/" }}/{{ .Version }}/{{ .Package }}-{{ .Version }}-bin.tar.gz'
//	downloadTimeout: 5s
//	installDir: /opt
//	brokerRoot: /var/lib/artemis
//	brokerName: candlepin
//	brokerConfig: /usr/share/candlepin/broker.xml
//	brokerDataDir: ""                     # empty: ./data inside the instance
//	candlepinConf: /etc/candlepin/candlepin.conf
//
// Validate reports every invalid field at once as ValidationErrors.
package config
