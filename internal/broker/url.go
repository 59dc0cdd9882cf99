package broker

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultOrigin is the Apache archive serving Artemis releases.
const DefaultOrigin = "https://archive.apache.org/dist/activemq/activemq-artemis"

// DefaultURLTemplate renders {origin}/{version}/{package}-{version}-bin.tar.gz.
const DefaultURLTemplate = `{{ .Origin | trimSuffix "/" }}/{{ .Version }}/{{ .Package }}-{{ .Version }}-bin.tar.gz`

// URLData is the data handed to an archive URL template.
type URLData struct {
	Origin  string
	Version string
	Package string
}

// ParseURLTemplate compiles an archive URL template with the sprig function set.
func ParseURLTemplate(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultURLTemplate
	}
	tmpl, err := template.New("archive-url").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid archive URL template: %w", err)
	}
	return tmpl, nil
}

// ArchiveURL renders the download URL for version.
func ArchiveURL(tmplText, origin, version string) (string, error) {
	tmpl, err := ParseURLTemplate(tmplText)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := URLData{Origin: origin, Version: version, Package: PackageName}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render archive URL: %w", err)
	}
	return buf.String(), nil
}
