// Package cmd implements the xirr command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/services/returns"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "xirr",
	Short: "Returns on irregular cash-flow schedules",
	Long: `xirr computes the annualised internal rate of return (XIRR) and net
present value (XNPV) of dated cash-flow schedules.

Schedules are read from CSV files with a date column and an amount column.
Dates may be YYYY-MM-DD, MM/DD/YYYY or YYYY-MM-DDTHH:MM:SS. Negative amounts
are outflows, positive amounts are inflows.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XIRR_CONFIG or ./config/xirr.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves the config file the same way the server does, minus
// the binary-relative lookup.
func loadConfig() (*common.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("XIRR_CONFIG")
	}
	if path == "" {
		path = "config/xirr.toml"
	}
	return common.LoadConfig(path)
}

// newService builds a returns service without storage; the CLI only
// evaluates schedules it reads itself.
func newService() (*returns.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := "error"
	if verbose {
		level = "debug"
	}
	return returns.NewService(nil, cfg.Solver, common.NewLogger(level)), nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
