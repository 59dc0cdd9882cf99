package broker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"
)

const provisionerSubsystem = "Provisioner"

// stderrTail bounds how much of the scaffolding command's stderr ends up in
// a ProvisioningError message.
const stderrTail = 2048

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// Provisioner runs the vendor "artemis create" command.
type Provisioner struct {
	// Stdout and Stderr receive the command's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// NewProvisioner returns a Provisioner that streams the command's output to
// stdout and stderr. Pass nil to discard either.
func NewProvisioner(stdout, stderr io.Writer) *Provisioner {
	return &Provisioner{Stdout: stdout, Stderr: stderr}
}

// CreateInstance makes sure brokerRoot exists and scaffolds the brokerName
// instance inside it. An existing instance directory is accepted as is.
func (p *Provisioner) CreateInstance(ctx context.Context, installPath, brokerRoot, brokerName string) (string, error) {
	if err := os.MkdirAll(brokerRoot, 0755); err != nil {
		return "", provision.Wrap(provision.KindFilesystem, brokerRoot, err)
	}

	instancePath := InstancePath(brokerRoot, brokerName)
	if provision.Exists(instancePath) {
		logging.Info(provisionerSubsystem, "Broker already exists, skipping creation: %s", instancePath)
		return instancePath, nil
	}

	logging.Info(provisionerSubsystem, "Creating artemis broker: %s", instancePath)

	bin := filepath.Join(installPath, "bin", "artemis")
	args := []string{
		"create",
		"--user", DefaultUser,
		"--password", DefaultPassword,
		"--allow-anonymous",
		instancePath,
	}
	logging.Debug(provisionerSubsystem, "Running %s %s", bin, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := execCommandContext(ctx, bin, args...)
	cmd.Stdout = sink(p.Stdout)
	cmd.Stderr = io.MultiWriter(sink(p.Stderr), &stderr)

	if err := cmd.Run(); err != nil {
		return "", provision.Wrap(provision.KindProvisioning, instancePath, commandError(err, stderr.Bytes()))
	}

	return instancePath, nil
}

func sink(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func commandError(err error, stderr []byte) error {
	out := bytes.TrimSpace(stderr)
	if len(out) == 0 {
		return fmt.Errorf("artemis create failed: %w", err)
	}
	if len(out) > stderrTail {
		out = out[len(out)-stderrTail:]
	}
	return fmt.Errorf("artemis create failed: %w\nOutput: %s", err, out)
}
