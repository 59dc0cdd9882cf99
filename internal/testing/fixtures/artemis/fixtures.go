// Package artemis provides embedded broker fixtures and a fake Artemis
// release archive for tests.
package artemis

import (
	"archive/tar"
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"
)

// VendorBrokerXML is a broker.xml as generated by "artemis create".
//
//go:embed vendor_broker.xml
var VendorBrokerXML []byte

// TemplateBrokerXML is a replacement broker.xml with two acceptors.
//
//go:embed template_broker.xml
var TemplateBrokerXML []byte

// MissingPagingXML lacks the paging-directory element.
//
//go:embed missing_paging.xml
var MissingPagingXML []byte

// WrongNamespaceXML has every element but outside the Artemis namespaces.
//
//go:embed wrong_namespace.xml
var WrongNamespaceXML []byte

// CandlepinConf is a consumer config with duplicated and differently valued
// audit keys.
//
//go:embed candlepin.conf
var CandlepinConf []byte

// ScaffoldScript returns a POSIX shell stand-in for "bin/artemis". Its
// "create" subcommand writes VendorBrokerXML to {instance}/etc/broker.xml.
func ScaffoldScript() string {
	return `#!/bin/sh
[ "$1" = "create" ] || { echo "unsupported command: $1" >&2; exit 2; }
for instance; do :; done
mkdir -p "$instance/etc" "$instance/bin" || exit 1
cat > "$instance/etc/broker.xml" <<'ARTEMIS_XML'
` + string(VendorBrokerXML) + `ARTEMIS_XML
echo "Creating ActiveMQ Artemis instance at: $instance"
`
}

// FailingScaffoldScript returns a "bin/artemis" that always exits 3.
func FailingScaffoldScript() string {
	return `#!/bin/sh
echo "AMQ229031: Unable to create instance" >&2
exit 3
`
}

// ArchiveEntry is one file of a generated archive.
type ArchiveEntry struct {
	Name     string
	Body     string
	Mode     int64
	Type     byte
	Linkname string
}

// ReleaseArchive builds apache-artemis-{version}-bin.tar.gz contents whose
// bin/artemis is script.
func ReleaseArchive(version, script string) ([]byte, error) {
	root := fmt.Sprintf("apache-artemis-%s/", version)
	return TarGz([]ArchiveEntry{
		{Name: root, Type: tar.TypeDir, Mode: 0755},
		{Name: root + "bin/", Type: tar.TypeDir, Mode: 0755},
		{Name: root + "bin/artemis", Body: script, Mode: 0755},
		{Name: root + "lib/", Type: tar.TypeDir, Mode: 0755},
		{Name: root + "lib/artemis-boot.jar", Body: "not really a jar", Mode: 0644},
		{Name: root + "README.html", Body: "<html></html>", Mode: 0644},
	})
}

// TarGz builds a gzipped tar from entries. Entries without a Type are
// regular files.
func TarGz(entries []ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		typ := e.Type
		if typ == 0 {
			typ = tar.TypeReg
		}
		hdr := &tar.Header{
			Name:     e.Name,
			Mode:     e.Mode,
			Typeflag: typ,
			Linkname: e.Linkname,
			ModTime:  time.Unix(1500000000, 0),
		}
		if typ == tar.TypeReg {
			hdr.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if typ == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				return nil, err
			}
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
