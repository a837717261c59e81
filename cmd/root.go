// Package cmd wires the CLI commands around the schedule evaluator.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/rcpsp-inv/config"
	"github.com/kilianp07/rcpsp-inv/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "rcpsp-inv",
	Short: "Schedule evaluator for RCPSP with inventory constraints",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig returns the file-based configuration, or the defaults when no
// --config flag was given.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.Logging.Level)
	return cfg, nil
}
