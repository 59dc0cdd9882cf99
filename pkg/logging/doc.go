// Package logging provides subsystem-tagged structured logging for artemisctl.
//
// The package wraps Go's standard slog text handler. Every record carries a
// subsystem attribute naming the component that emitted it and, once SetRunID
// has been called, the identifier of the current install or clean run.
//
// # Log Levels
//   - **Debug**: command lines, skipped checkpoints, per-entry extraction detail
//   - **Info**: one line per step and checkpoint decision
//   - **Warn**: recoverable oddities (unsupported archive entry types)
//   - **Error**: the fatal step failure reported at the CLI boundary
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.SetRunID(uuid.NewString())
//
//	logging.Info("Fetcher", "Downloading %s", url)
//	logging.Error("CLI", err, "Install failed")
//
// # Subsystems
//
//   - **Fetcher**: release archive download
//   - **Installer**: archive extraction
//   - **Provisioner**: broker instance scaffolding
//   - **Patcher**: broker.xml rewriting
//   - **BrokerConfig**: vendor backup and template copy
//   - **Teardown**: clean mode
//   - **Consumer**: candlepin.conf rewriting
//   - **Orchestrator**: step sequencing
//   - **ConfigLoader**: YAML configuration
//   - **CLI**: command-level failures
//
// Logging before InitForCLI is a no-op except for warnings and errors, which
// fall back to stderr.
package logging
