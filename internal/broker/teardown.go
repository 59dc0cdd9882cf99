package broker

import (
	"os"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"
)

const teardownSubsystem = "Teardown"

// Cleanup removes brokerRoot and the unpacked release for version. Missing
// directories are not an error. The cached archive is left in place so a
// later install does not download it again.
func Cleanup(installDir, version, brokerRoot string) error {
	logging.Info(teardownSubsystem, "Cleaning up artemis installation")

	if provision.Exists(brokerRoot) {
		logging.Info(teardownSubsystem, "Removing broker root: %s", brokerRoot)
		if err := os.RemoveAll(brokerRoot); err != nil {
			return provision.Wrap(provision.KindFilesystem, brokerRoot, err)
		}
	}

	release := ReleaseDir(installDir, version)
	if provision.Exists(release) {
		logging.Info(teardownSubsystem, "Removing artemis installation: %s", release)
		if err := os.RemoveAll(release); err != nil {
			return provision.Wrap(provision.KindFilesystem, release, err)
		}
	}

	return nil
}
