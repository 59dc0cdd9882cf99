package cmd

import (
	"os"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. Each provisioning failure kind has its own
// code so scripts can tell a network problem from a broken broker.xml.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (invalid arguments or config).
	ExitCodeError = 1
	// ExitCodeDownload indicates the release archive could not be fetched.
	ExitCodeDownload = 2
	// ExitCodeExtraction indicates the release archive could not be unpacked.
	ExitCodeExtraction = 3
	// ExitCodeFilesystem indicates a file or directory operation failed.
	ExitCodeFilesystem = 4
	// ExitCodeProvisioning indicates "bin/artemis create" failed.
	ExitCodeProvisioning = 5
	// ExitCodeConfigParse indicates broker.xml could not be parsed.
	ExitCodeConfigParse = 6
	// ExitCodeConfigSchema indicates broker.xml lacks an expected element.
	ExitCodeConfigSchema = 7
)

// options holds the flag values shared by every provisioning command.
var options = &provisionFlags{}

// rootCmd represents the base command for the artemisctl application.
// Without a subcommand it installs, or cleans up when --clean is given.
var rootCmd = &cobra.Command{
	Use:   "artemisctl",
	Short: "Install and configure an Apache Artemis broker for Candlepin",
	Long: `artemisctl downloads an Apache Artemis release, creates a broker instance,
installs a replacement broker.xml patched for this host and points the
Candlepin consumer config at the broker.

Every step checks the filesystem first and is skipped when its result is
already there, so running artemisctl again is always safe.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging(cmd, options)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if options.clean {
			return runClean(cmd, options)
		}
		return runInstall(cmd, options)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "artemisctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	switch provision.KindOf(err) {
	case provision.KindDownload:
		return ExitCodeDownload
	case provision.KindExtraction:
		return ExitCodeExtraction
	case provision.KindFilesystem:
		return ExitCodeFilesystem
	case provision.KindProvisioning:
		return ExitCodeProvisioning
	case provision.KindConfigParse:
		return ExitCodeConfigParse
	case provision.KindConfigSchema:
		return ExitCodeConfigSchema
	}

	// Default to general error
	return ExitCodeError
}

func initLogging(cmd *cobra.Command, f *provisionFlags) {
	level := logging.LevelInfo
	switch {
	case f.verbose:
		level = logging.LevelDebug
	case f.quiet:
		level = logging.LevelWarn
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
}

func init() {
	options.register(rootCmd.PersistentFlags())
	rootCmd.Flags().BoolVar(&options.clean, "clean", false, "Remove the broker root and unpacked release instead of installing")

	rootCmd.AddCommand(newInstallCmd(options))
	rootCmd.AddCommand(newCleanCmd(options))
	rootCmd.AddCommand(newStatusCmd(options))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
