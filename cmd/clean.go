package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"artemisctl/internal/orchestrator"

	"github.com/spf13/cobra"
)

func newCleanCmd(f *provisionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the broker instance and the unpacked release",
		Long: `Removes the broker root directory and the unpacked Artemis release.
The downloaded archive is kept so a later install does not fetch it again.
Missing directories are not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, f)
		},
	}
}

func runClean(cmd *cobra.Command, f *provisionFlags) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o := orchestrator.New(orchestrator.Options{Config: cfg, Observer: observerFor(cmd, f)})
	if err := o.Clean(ctx); err != nil {
		return err
	}

	if !f.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", cfg.BrokerRoot)
	}
	return nil
}
