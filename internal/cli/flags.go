package cli

import "github.com/spf13/cobra"

// GlobalFlags holds values for flags that apply to every subcommand.
type GlobalFlags struct {
	// Verbose enables debug-level logging.
	Verbose bool

	// Quiet raises the log level to warnings and errors only.
	Quiet bool
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "only log warnings and errors")
}
