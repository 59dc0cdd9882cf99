package cmd

import (
	"fmt"

	"artemisctl/internal/config"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the command printing the artemisctl build version
// and the Artemis release installed by default.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of artemisctl",
		Long:  `Prints the artemisctl build version and the Artemis release it installs when --version-id is not given.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "artemisctl version %s\n", rootCmd.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "default artemis release %s\n", config.DefaultVersion)
		},
	}
}
