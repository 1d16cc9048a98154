/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared helpers for the fis commands. Loads configuration, builds the logger from
viper settings, and parses plus compiles .fis files with timing and logging.
*/

package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/kleascm/sugeno-fis/pkg/logging"
	"github.com/kleascm/sugeno-fis/pkg/parser"
	"github.com/kleascm/sugeno-fis/pkg/sugeno"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is reported by --version and stamped into written reports
const Version = "1.0.0"

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// FIS_LOG_LEVEL, FIS_BATCH_WORKERS, ...
	viper.SetEnvPrefix("FIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds a logger from the log_* settings, writing to the command's stderr
func SetupLogging(cmd *cobra.Command) (*logging.Logger, error) {
	config := logging.DefaultConfig()
	config.Colors = viper.GetBool("log_colors")
	if level := viper.GetString("log_level"); level != "" {
		config.Level = logging.LogLevel(level)
	}
	if format := viper.GetString("log_format"); format != "" {
		config.Format = logging.LogFormat(format)
	}
	config.OutputDir = viper.GetString("log_dir")
	if maxFiles := viper.GetInt("log_max_files"); maxFiles > 0 {
		config.MaxFiles = maxFiles
	}

	logger, err := logging.NewLogger(config, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// loadSystem parses path and logs the outcome
func loadSystem(path string, logger *logging.Logger) (*fis.System, error) {
	start := time.Now()
	sys, err := parser.ParseFile(path, parser.WithLogger(logger.GetLogger()))
	if err != nil {
		logger.LogParse(path, time.Since(start), err, nil)
		return nil, err
	}
	logger.LogParse(path, time.Since(start), nil, logrus.Fields{
		"system": sys.Name(),
		"type":   sys.Type(),
		"rules":  sys.NumRules(),
	})
	return sys, nil
}

// loadEngine parses and compiles path
func loadEngine(path string, logger *logging.Logger) (*sugeno.Engine, error) {
	sys, err := loadSystem(path, logger)
	if err != nil {
		return nil, err
	}
	engine, err := sugeno.Compile(sys)
	logger.LogCompile(sys.Name(), sys.NumRules(), err)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

// parseAssignments turns name=value pairs into an input vector
func parseAssignments(pairs []string) (map[string]float64, error) {
	inputs := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("input %q must look like name=value", pair)
		}
		if _, dup := inputs[name]; dup {
			return nil, fmt.Errorf("input %q given twice", name)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("input %q: %q is not a number", name, raw)
		}
		inputs[name] = value
	}
	return inputs, nil
}

// sortedKeys returns the keys of m in order, for stable output
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
