// filepath: internal/cli/cli.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
const Version = "1.0.0"

type GlobalOptions struct {
	CfgFilePath string
	LogLevel    string
}

func NewRootCMD() *cobra.Command {

	globalOptions := &GlobalOptions{}

	rootCMD := &cobra.Command{
		Use:   "docvault",
		Short: "DocVault document ingestion service",
		Long:  "A backend service for atomic ingestion and storage of case file documents.",
	}

	// register global flags
	globalOptions.registerFlags(rootCMD)

	// add subcommands
	rootCMD.AddCommand(NewServeCommand(globalOptions))
	rootCMD.AddCommand(NewReapCommand(globalOptions))
	rootCMD.AddCommand(NewStatsCommand(globalOptions))

	return rootCMD
}

func (options *GlobalOptions) registerFlags(cmd *cobra.Command) {
	// flags that can be used for each command
	cmd.PersistentFlags().StringVar(&options.CfgFilePath, "config_path", "config.toml", "Path to the base configuration file. (Env: DOCVAULT_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: DOCVAULT_LOG_LEVEL)")
}

func Execute() {

	rootCmd := NewRootCMD()

	// Run the command based on os.Args
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
