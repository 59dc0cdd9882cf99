package consumer

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"
)

const subsystem = "Consumer"

const (
	// EmbeddedKey toggles Candlepin's in-process broker.
	EmbeddedKey = "candlepin.audit.hornetq.embedded"
	// BrokerURLKey is the URL Candlepin dials for its audit broker.
	BrokerURLKey = "candlepin.audit.hornetq.broker_url"
)

// Rewrite points the consumer config at brokerURL. Every existing line
// setting EmbeddedKey or BrokerURLKey is dropped, all other lines are kept
// verbatim and in order, and exactly one line for each key is appended.
func Rewrite(path, brokerURL string) error {
	logging.Info(subsystem, "Pointing %s at %s", path, brokerURL)

	data, err := os.ReadFile(path)
	if err != nil {
		return provision.Wrap(provision.KindFilesystem, path, err)
	}

	var out bytes.Buffer
	dropped := 0
	for _, line := range splitLines(data) {
		if isManagedKey(key(line)) {
			dropped++
			continue
		}
		out.WriteString(line)
	}
	if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
		out.WriteByte('\n')
	}
	out.WriteString(EmbeddedKey + "=false\n")
	out.WriteString(BrokerURLKey + "=" + brokerURL + "\n")

	logging.Debug(subsystem, "Replaced %d existing audit broker line(s)", dropped)

	if err := provision.WriteFileAtomic(path, out.Bytes(), 0644); err != nil {
		return provision.Wrap(provision.KindFilesystem, path, err)
	}
	return nil
}

// Lookup returns the values of EmbeddedKey and BrokerURLKey found in path.
// When a key occurs more than once the last occurrence wins, matching how
// the consumer reads its own file.
func Lookup(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, provision.Wrap(provision.KindFilesystem, path, err)
	}

	values := make(map[string]string)
	for _, line := range splitLines(data) {
		k := key(line)
		if !isManagedKey(k) {
			continue
		}
		values[k] = value(line)
	}
	return values, nil
}

// splitLines splits data after each newline, keeping the terminators so
// untouched lines can be written back byte for byte.
func splitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	sc.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			return i + 1, data[:i+1], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	})
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// key returns the property key of line, or "" for blanks and comments.
func key(line string) string {
	k, _ := split(line)
	return k
}

func value(line string) string {
	_, v := split(line)
	return v
}

// split breaks a properties line into key and value. The key ends at the
// first unescaped '=', ':' or whitespace. The separator is any run of
// whitespace with at most one '=' or ':' in it.
func split(line string) (string, string) {
	trimmed := strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t\f")
	if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
		return "", ""
	}

	end := len(trimmed)
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '\\' {
			i++
			continue
		}
		if c == '=' || c == ':' || isPropertySpace(c) {
			end = i
			break
		}
	}

	rest := strings.TrimLeft(trimmed[end:], " \t\f")
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		rest = rest[1:]
	}
	return trimmed[:end], strings.TrimSpace(rest)
}

func isPropertySpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

func isManagedKey(k string) bool {
	return k == EmbeddedKey || k == BrokerURLKey
}
