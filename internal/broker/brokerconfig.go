package broker

import (
	"os"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"
)

const brokerConfigSubsystem = "BrokerConfig"

// UpdateBrokerConfig installs replacementConfig as the instance's broker.xml
// and patches it for this host.
//
// The vendor-generated broker.xml is moved to broker.xml.old the first time
// only. Once the backup exists it is never touched again, since broker.xml
// then holds an already substituted template.
func UpdateBrokerConfig(instancePath, replacementConfig, dataDir string) error {
	active := ConfigPath(instancePath)
	backup := BackupPath(instancePath)

	if !provision.Exists(backup) {
		logging.Info(brokerConfigSubsystem, "Backing up generated broker config to %s", backup)
		if err := os.Rename(active, backup); err != nil {
			return provision.Wrap(provision.KindFilesystem, active, err)
		}
	} else {
		logging.Debug(brokerConfigSubsystem, "Backup %s already present", backup)
	}

	logging.Info(brokerConfigSubsystem, "Copying broker config %s", replacementConfig)
	if err := provision.CopyFile(replacementConfig, active); err != nil {
		return provision.Wrap(provision.KindFilesystem, replacementConfig, err)
	}

	return Patch(active, dataDir)
}
