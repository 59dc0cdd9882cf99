package broker

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"

	"github.com/klauspost/compress/gzip"
)

const installerSubsystem = "Installer"

// Installer fetches a release archive and unpacks it into an install root.
type Installer struct {
	Fetcher *Fetcher
}

// NewInstaller creates an Installer around fetcher.
func NewInstaller(fetcher *Fetcher) *Installer {
	return &Installer{Fetcher: fetcher}
}

// Download fetches the archive for version from url into installDir unless
// it is already cached there, and returns its path.
func (i *Installer) Download(ctx context.Context, url, installDir, version string) (string, error) {
	return i.Fetcher.Fetch(ctx, url, filepath.Join(installDir, ArchiveName(version)))
}

// Install downloads the archive for version (unless cached) and unpacks it
// (unless already unpacked). It returns the release directory.
func (i *Installer) Install(ctx context.Context, url, installDir, version string) (string, error) {
	archive, err := i.Download(ctx, url, installDir, version)
	if err != nil {
		return "", err
	}
	return Extract(installDir, archive)
}

// Extract unpacks the gzipped tar at archivePath into basedir and returns
// the directory named after the archive with its "-bin.tar.gz" suffix
// stripped. When that directory already exists nothing is extracted.
//
// Entries are unpacked into a staging directory inside basedir and moved into
// place at the end, so an interrupted extraction never leaves a directory that
// a later run would mistake for a finished one.
func Extract(basedir, archivePath string) (string, error) {
	releasePath := filepath.Join(basedir, unpackedName(archivePath))
	if provision.Exists(releasePath) {
		logging.Info(installerSubsystem, "File already extracted: %s", releasePath)
		return releasePath, nil
	}

	if err := os.MkdirAll(basedir, 0755); err != nil {
		return "", provision.Wrap(provision.KindFilesystem, basedir, err)
	}

	logging.Info(installerSubsystem, "Extracting %s to %s", filepath.Base(archivePath), basedir)

	staging, err := os.MkdirTemp(basedir, ".extract-*")
	if err != nil {
		return "", provision.Wrap(provision.KindFilesystem, basedir, err)
	}
	defer os.RemoveAll(staging)

	if err := untar(archivePath, staging); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", provision.Wrap(provision.KindFilesystem, staging, err)
	}
	for _, entry := range entries {
		dst := filepath.Join(basedir, entry.Name())
		if provision.Exists(dst) {
			logging.Debug(installerSubsystem, "Keeping existing %s", dst)
			continue
		}
		if err := os.Rename(filepath.Join(staging, entry.Name()), dst); err != nil {
			return "", provision.Wrap(provision.KindFilesystem, dst, err)
		}
	}

	if !provision.Exists(releasePath) {
		return "", provision.Errorf(provision.KindExtraction, archivePath,
			"archive does not contain %s", filepath.Base(releasePath))
	}
	return releasePath, nil
}

func untar(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return provision.Wrap(provision.KindExtraction, archivePath, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return provision.Wrap(provision.KindExtraction, archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return provision.Wrap(provision.KindExtraction, archivePath, err)
		}

		name, err := entryPath(hdr.Name)
		if err != nil {
			return provision.Wrap(provision.KindExtraction, archivePath, err)
		}
		if name == "." {
			continue
		}
		target := filepath.Join(dest, name)

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return provision.Wrap(provision.KindFilesystem, target, err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()|0700); err != nil {
				return provision.Wrap(provision.KindFilesystem, target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return provision.Wrap(provision.KindExtraction, target, err)
			}
		case tar.TypeSymlink:
			if err := checkLink(dest, target, hdr.Linkname); err != nil {
				return provision.Wrap(provision.KindExtraction, archivePath, err)
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return provision.Wrap(provision.KindFilesystem, target, err)
			}
		case tar.TypeLink:
			linkName, err := entryPath(hdr.Linkname)
			if err != nil {
				return provision.Wrap(provision.KindExtraction, archivePath, err)
			}
			if err := os.Link(filepath.Join(dest, linkName), target); err != nil {
				return provision.Wrap(provision.KindFilesystem, target, err)
			}
		default:
			logging.Warn(installerSubsystem, "Skipping unsupported entry %s (type %c)", hdr.Name, hdr.Typeflag)
		}
	}
}

// entryPath cleans an archive entry name and rejects names that would land
// outside the extraction root.
func entryPath(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes the extraction directory", name)
	}
	return cleaned, nil
}

func checkLink(root, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("symlink %s points to absolute path %q", target, linkname)
	}
	resolved := filepath.Join(filepath.Dir(target), linkname)
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("symlink %s escapes the extraction directory", target)
	}
	return nil
}

func writeEntry(path string, r io.Reader, perm os.FileMode) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile applies the umask; restore the archived mode.
	return os.Chmod(path, perm)
}
