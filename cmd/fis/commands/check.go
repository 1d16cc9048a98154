/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: The check command. Parses and compiles each given .fis file and reports
OK or FAIL per file. Useful as a CI gate for model files.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/sugeno-fis/pkg/logging"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.fis>...",
		Short: "Validate .fis files",
		Long: `Parse and compile every given .fis file and report the result per file.
With --parse-only the Sugeno compile step is skipped, so Mamdani files can be checked too.
Exits non-zero when any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: RunCheck,
	}
	cmd.Flags().Bool("parse-only", false, "Only parse, do not compile")
	return cmd
}

// RunCheck validates every file argument
func RunCheck(cmd *cobra.Command, args []string) error {
	logger, err := SetupLogging(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	parseOnly, _ := cmd.Flags().GetBool("parse-only")
	out := cmd.OutOrStdout()

	failed := 0
	for _, path := range args {
		name, rules, err := checkFile(path, parseOnly, logger)
		if reportCheck(cmd, path, name, rules, err) != nil {
			failed++
		}
	}

	fmt.Fprintf(out, "📊 %d/%d files passed\n", len(args)-failed, len(args))
	if failed > 0 {
		return fmt.Errorf("%d/%d files failed", failed, len(args))
	}
	return nil
}

// checkFile returns the system name and rule count of a valid file
func checkFile(path string, parseOnly bool, logger *logging.Logger) (string, int, error) {
	if parseOnly {
		sys, err := loadSystem(path, logger)
		if err != nil {
			return "", 0, err
		}
		return sys.Name(), sys.NumRules(), nil
	}
	engine, err := loadEngine(path, logger)
	if err != nil {
		return "", 0, err
	}
	return engine.Name(), engine.NumRules(), nil
}

func reportCheck(cmd *cobra.Command, path, name string, rules int, err error) error {
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "❌ FAIL %s: %v\n", path, err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ OK   %s: %s (%d rules)\n", path, name, rules)
	return nil
}
