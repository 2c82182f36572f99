package main

import (
	"github.com/spf13/cobra"

	"github.com/omensec/solsca/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "solsca",
	Short: "Static security analyzer for Solidity smart contracts",
	Long: `solsca parses Solidity source, builds a contract-level intermediate
representation, and runs a registry of reference detectors against it to
surface known vulnerability classes (reentrancy, tx.origin auth, unchecked
external calls, and others) as a structured report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a solsca config file (solsca.toml|yaml|json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
}

// loadConfig resolves the effective configuration for a subcommand run,
// honoring --config and overlaying --verbose onto the loaded result.
func loadConfig() (*config.Config, error) {
	var opts []config.LoadOption
	if cfgFile != "" {
		opts = append(opts, config.WithPath(cfgFile))
	}
	res, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	if verbose {
		res.Config.Output.Verbose = true
	}
	return res.Config, nil
}
