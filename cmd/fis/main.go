/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for the FIS toolkit. Inspects and validates MATLAB .fis
files and evaluates Sugeno systems for single inputs or YAML batches, with configuration
from flags, config files, and FIS_* environment variables.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kleascm/sugeno-fis/cmd/fis/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := newRootCommand()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fis",
		Short: "Parse, validate, and evaluate MATLAB fuzzy inference systems",
		Long: `fis reads MATLAB Fuzzy Logic Toolbox .fis files. Any file can be inspected and
checked; Takagi-Sugeno systems can also be compiled and evaluated for crisp inputs.`,
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.LoadConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path")
	flags.String("log-level", "warn", "Logging level (debug, info, warn, error)")
	flags.String("log-format", "custom", "Log format (text, json, custom)")
	flags.String("log-dir", "", "Also write logs to timestamped files in this directory")
	flags.Int("log-max-files", 10, "Maximum number of log files to keep")
	flags.Bool("log-colors", false, "Colorize custom log output")

	viper.BindPFlag("config", flags.Lookup("config"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("log_dir", flags.Lookup("log-dir"))
	viper.BindPFlag("log_max_files", flags.Lookup("log-max-files"))
	viper.BindPFlag("log_colors", flags.Lookup("log-colors"))

	rootCmd.AddCommand(
		commands.NewInspectCommand(),
		commands.NewCheckCommand(),
		commands.NewEvalCommand(),
		commands.NewBatchCommand(),
	)
	return rootCmd
}
