// Package broker installs, scaffolds, configures and removes an Apache
// Artemis broker instance.
//
// Each step is gated by a filesystem checkpoint rather than in-memory state,
// so any step can be re-run after a crash or a partial previous run:
//
//   - Fetcher.Fetch: skipped when the archive is already cached
//   - Extract: skipped when the release directory exists
//   - Provisioner.CreateInstance: skipped when the instance directory exists
//   - UpdateBrokerConfig: the vendor backup happens only while broker.xml.old
//     is absent; the template copy and Patch always run and always write
//     absolute values
//   - Cleanup: each removal is skipped when its directory is absent
//
// Failures are returned as *provision.Error values.
package broker
