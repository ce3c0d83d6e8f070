// Package cmd implements the frix command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with all subcommands attached.
// Each call returns a fresh tree, so tests can execute commands in isolation.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "frix",
		Short: "Frix landing page",
		Long: `Serve, export and verify the Frix landing page.

The page is rendered from Go components. "serve" runs the web server,
"render" exports the page as static files and "check" verifies the
rendered markup against its content contract.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newRenderCommand(),
		newCheckCommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return NewRootCommand().Execute()
}
