package consumer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artemisctl/internal/provision"
	"artemisctl/internal/testing/fixtures/artemis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brokerURL = "tcp://localhost:61617"

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candlepin.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))
	return path
}

func readConf(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func countKey(content, k string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if key(line) == k {
			n++
		}
	}
	return n
}

func TestRewrite_Fixture(t *testing.T) {
	path := writeConf(t, string(artemis.CandlepinConf))

	require.NoError(t, Rewrite(path, brokerURL))

	want := `# Candlepin configuration
jpa.config.hibernate.connection.url=jdbc:postgresql:candlepin

candlepin.audit.hornetq.embedded_extra=keep me
module.config.adapter_module=org.candlepin.service.impl.DefaultAdapterModule
candlepin.audit.hornetq.embedded=false
candlepin.audit.hornetq.broker_url=tcp://localhost:61617
`
	assert.Equal(t, want, readConf(t, path))
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty file",
			input: "",
			want:  "candlepin.audit.hornetq.embedded=false\ncandlepin.audit.hornetq.broker_url=tcp://localhost:61617\n",
		},
		{
			name:  "no trailing newline",
			input: "a=1\nb=2",
			want:  "a=1\nb=2\ncandlepin.audit.hornetq.embedded=false\ncandlepin.audit.hornetq.broker_url=tcp://localhost:61617\n",
		},
		{
			name:  "managed keys in the middle",
			input: "a=1\ncandlepin.audit.hornetq.broker_url=vm://0\nb=2\ncandlepin.audit.hornetq.embedded = true\nc=3\n",
			want:  "a=1\nb=2\nc=3\ncandlepin.audit.hornetq.embedded=false\ncandlepin.audit.hornetq.broker_url=tcp://localhost:61617\n",
		},
		{
			name:  "commented out keys are kept",
			input: "#candlepin.audit.hornetq.embedded=true\n",
			want:  "#candlepin.audit.hornetq.embedded=true\ncandlepin.audit.hornetq.embedded=false\ncandlepin.audit.hornetq.broker_url=tcp://localhost:61617\n",
		},
		{
			name:  "windows line endings on kept lines",
			input: "a=1\r\ncandlepin.audit.hornetq.embedded=true\r\n",
			want:  "a=1\r\ncandlepin.audit.hornetq.embedded=false\ncandlepin.audit.hornetq.broker_url=tcp://localhost:61617\n",
		},
		{
			name:  "whitespace separated managed keys",
			input: "candlepin.audit.hornetq.embedded true\ncandlepin.audit.hornetq.broker_url\tvm://0\n",
			want:  "candlepin.audit.hornetq.embedded=false\ncandlepin.audit.hornetq.broker_url=tcp://localhost:61617\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConf(t, tt.input)
			require.NoError(t, Rewrite(path, brokerURL))
			assert.Equal(t, tt.want, readConf(t, path))
		})
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	path := writeConf(t, string(artemis.CandlepinConf))

	require.NoError(t, Rewrite(path, brokerURL))
	first := readConf(t, path)
	require.NoError(t, Rewrite(path, brokerURL))
	second := readConf(t, path)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countKey(second, EmbeddedKey))
	assert.Equal(t, 1, countKey(second, BrokerURLKey))
}

func TestRewrite_KeepsMode(t *testing.T) {
	path := writeConf(t, "a=1\n")
	require.NoError(t, Rewrite(path, brokerURL))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestRewrite_MissingFile(t *testing.T) {
	err := Rewrite(filepath.Join(t.TempDir(), "candlepin.conf"), brokerURL)
	require.Error(t, err)
	assert.True(t, provision.IsKind(err, provision.KindFilesystem))
}

func TestLookup(t *testing.T) {
	path := writeConf(t, string(artemis.CandlepinConf))

	values, err := Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, "true", values[EmbeddedKey])
	assert.Equal(t, "tcp://somewhere:5672", values[BrokerURLKey])

	require.NoError(t, Rewrite(path, brokerURL))
	values, err = Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{EmbeddedKey: "false", BrokerURLKey: brokerURL}, values)
}

func TestKey(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"a=b\n", "a"},
		{"  a = b", "a"},
		{"a:b", "a"},
		{"# a=b", ""},
		{"! a=b", ""},
		{"   \n", ""},
		{"flag", "flag"},
		{"candlepin.audit.hornetq.broker_url=tcp://x:1", BrokerURLKey},
		{"a b", "a"},
		{"a\tb", "a"},
		{"candlepin.audit.hornetq.embedded true", EmbeddedKey},
		{`a\ b=c`, `a\ b`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, key(tt.line), "line %q", tt.line)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"a=b", "b"},
		{"  a = b ", "b"},
		{"a:b", "b"},
		{"a b", "b"},
		{"a  =  b", "b"},
		{"a = = b", "= b"},
		{"url tcp://x:1", "tcp://x:1"},
		{"flag", ""},
		{"# a=b", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, value(tt.line), "line %q", tt.line)
	}
}

func TestLookup_WhitespaceSeparator(t *testing.T) {
	path := writeConf(t, "candlepin.audit.hornetq.embedded true\ncandlepin.audit.hornetq.broker_url vm://0\n")

	values, err := Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{EmbeddedKey: "true", BrokerURLKey: "vm://0"}, values)
}
