package broker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

const patcherSubsystem = "Patcher"

// namespaces are registered on every compiled query. Artemis puts the
// document root in urn:activemq and the <core> block in urn:activemq:core,
// both as default namespaces, so unprefixed paths would not match.
var namespaces = map[string]string{
	"activemq": "urn:activemq",
	"core":     "urn:activemq:core",
}

const acceptorQuery = "//activemq:configuration/core:core/core:acceptors/core:acceptor"

// storageDirectories maps each journal/storage element to the subdirectory
// of the data directory it is pointed at.
var storageDirectories = []struct {
	element string
	subdir  string
}{
	{"bindings-directory", "bindings"},
	{"journal-directory", "journal"},
	{"large-messages-directory", "largemsgs"},
	{"paging-directory", "paging"},
}

// Patch rewrites the acceptor and storage directories of the broker.xml at
// xmlPath. An empty dataDir means DefaultDataDir. Every node is located
// before anything is changed and the file is only rewritten at the end, so
// a missing node leaves xmlPath untouched.
func Patch(xmlPath, dataDir string) error {
	logging.Info(patcherSubsystem, "Updating broker configuration: %s", xmlPath)

	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	dataDir = strings.TrimSuffix(dataDir, "/")

	doc, err := parseDocument(xmlPath)
	if err != nil {
		return err
	}

	// First match wins when a config declares several acceptors.
	acceptor, err := doc.first(acceptorQuery)
	if err != nil {
		return err
	}

	dirs := make([]*xmlquery.Node, len(storageDirectories))
	for i, sd := range storageDirectories {
		node, err := doc.first("//activemq:configuration/core:core/core:" + sd.element)
		if err != nil {
			return err
		}
		dirs[i] = node
	}

	acceptor.SetAttr("name", AcceptorName)
	setContent(acceptor, AcceptorURL)
	for i, sd := range storageDirectories {
		value := dataDir + "/" + sd.subdir
		setContent(dirs[i], value)
		logging.Debug(patcherSubsystem, "Set %s to %s", sd.element, value)
	}

	return doc.save()
}

type document struct {
	path string
	root *xmlquery.Node
}

// parseDocument reads and parses path. The file handle is released before
// returning on every path.
func parseDocument(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, provision.Wrap(provision.KindFilesystem, path, err)
		}
		return nil, provision.Wrap(provision.KindConfigParse, path, err)
	}
	defer f.Close()

	root, err := xmlquery.Parse(f)
	if err != nil {
		return nil, provision.Wrap(provision.KindConfigParse, path, err)
	}
	return &document{path: path, root: root}, nil
}

func (d *document) first(query string) (*xmlquery.Node, error) {
	expr, err := xpath.CompileWithNS(query, namespaces)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	nodes := xmlquery.QuerySelectorAll(d.root, expr)
	if len(nodes) == 0 {
		return nil, provision.Errorf(provision.KindConfigSchema, d.path, "no node matches %s", query)
	}
	return nodes[0], nil
}

func (d *document) save() error {
	out := d.root.OutputXMLWithOptions(xmlquery.WithPreserveSpace())
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if err := provision.WriteFileAtomic(d.path, []byte(out), 0644); err != nil {
		return provision.Wrap(provision.KindFilesystem, d.path, err)
	}
	return nil
}

// setContent replaces every child of n with a single text node.
func setContent(n *xmlquery.Node, text string) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		xmlquery.RemoveFromTree(child)
		child = next
	}
	xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
}
