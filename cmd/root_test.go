package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"artemisctl/internal/provision"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if GetVersion() != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "artemisctl" {
		t.Errorf("Expected Use to be 'artemisctl', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	if rootCmd.RunE == nil {
		t.Error("Expected the root command to install when run without a subcommand")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "artemisctl version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "artemisctl version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	foundCommands := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range []string{"install", "clean", "status", "version", "self-update"} {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := []string{
		"config", "version-id", "origin", "broker-config", "install-dir", "broker-root",
		"broker-name", "broker-data-dir", "candlepin-conf", "download-timeout", "verbose", "quiet",
	}
	for _, name := range flags {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}

	assert.NotNil(t, rootCmd.Flags().Lookup("clean"))
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "q", rootCmd.PersistentFlags().Lookup("quiet").Shorthand)

	// --version stays cobra's own flag.
	assert.Nil(t, rootCmd.PersistentFlags().Lookup("version"))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodeSuccess},
		{"plain error", errors.New("boom"), ExitCodeError},
		{"unknown kind", provision.WithStep("download", errors.New("boom")), ExitCodeError},
		{"download", provision.Errorf(provision.KindDownload, "http://x", "404"), ExitCodeDownload},
		{"extraction", provision.Errorf(provision.KindExtraction, "a.tar.gz", "bad"), ExitCodeExtraction},
		{"filesystem", provision.Errorf(provision.KindFilesystem, "/opt", "denied"), ExitCodeFilesystem},
		{"provisioning", provision.Errorf(provision.KindProvisioning, "", "exit 3"), ExitCodeProvisioning},
		{"config parse", provision.Errorf(provision.KindConfigParse, "broker.xml", "eof"), ExitCodeConfigParse},
		{"config schema", provision.Errorf(provision.KindConfigSchema, "broker.xml", "no acceptor"), ExitCodeConfigSchema},
		{
			name: "wrapped with step",
			err:  fmt.Errorf("install: %w", provision.WithStep("extract", provision.Errorf(provision.KindExtraction, "", "bad"))),
			want: ExitCodeExtraction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getExitCode(tt.err))
		})
	}
}
