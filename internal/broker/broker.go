package broker

import (
	"path/filepath"
	"strings"
)

const (
	// PackageName is the vendor's release package prefix.
	PackageName = "apache-artemis"

	// ArchiveSuffix is appended to "{PackageName}-{version}" to form the
	// release archive file name.
	ArchiveSuffix = "-bin.tar.gz"

	// AcceptorName is the name attribute set on the patched acceptor.
	AcceptorName = "netty"

	// AcceptorURL is the listener URI written into the acceptor and handed to
	// the consumer application.
	AcceptorURL = "tcp://localhost:61617"

	// DefaultDataDir is used when no data directory is configured. It is
	// relative to the broker instance.
	DefaultDataDir = "./data"

	// DefaultUser and DefaultPassword are the credentials passed to
	// "artemis create".
	DefaultUser     = "admin"
	DefaultPassword = "admin"

	brokerXML       = "broker.xml"
	brokerXMLBackup = "broker.xml.old"
)

// ArchiveName returns the release archive file name for version.
func ArchiveName(version string) string {
	return PackageName + "-" + version + ArchiveSuffix
}

// ReleaseDir returns the directory the release for version unpacks to.
func ReleaseDir(installDir, version string) string {
	return filepath.Join(installDir, PackageName+"-"+version)
}

// InstancePath returns the instance directory for brokerName.
func InstancePath(brokerRoot, brokerName string) string {
	return filepath.Join(brokerRoot, brokerName)
}

// ConfigPath returns the active broker.xml of an instance.
func ConfigPath(instancePath string) string {
	return filepath.Join(instancePath, "etc", brokerXML)
}

// BackupPath returns the one-time backup of the vendor broker.xml.
func BackupPath(instancePath string) string {
	return filepath.Join(instancePath, "etc", brokerXMLBackup)
}

// unpackedName strips the archive suffix from an archive's base name.
func unpackedName(archivePath string) string {
	return strings.TrimSuffix(filepath.Base(archivePath), ArchiveSuffix)
}
