package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"artemisctl/internal/orchestrator"

	"github.com/spf13/cobra"
)

func newInstallCmd(f *provisionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install and configure the Artemis broker (default)",
		Long: `Downloads the Artemis release unless it is cached, unpacks it unless it is
already unpacked, creates the broker instance unless it exists, installs and
patches broker.xml and points the Candlepin consumer config at the broker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, f)
		},
	}
}

func runInstall(cmd *cobra.Command, f *provisionFlags) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o := orchestrator.New(orchestrator.Options{
		Config:   cfg,
		Verbose:  f.verbose,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Observer: observerFor(cmd, f),
	})
	res, err := o.Install(ctx)
	if err != nil {
		return err
	}

	if !f.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Broker instance ready at %s\n", res.InstancePath)
	}
	return nil
}

// observerFor returns the step reporter for f, or nil when quiet.
func observerFor(cmd *cobra.Command, f *provisionFlags) orchestrator.Observer {
	if f.quiet {
		return nil
	}
	return newStepReporter(cmd.OutOrStdout(), !f.verbose)
}
