package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blogem/proof-calc/config"
	"github.com/blogem/proof-calc/logging"
)

var (
	// Global flags
	envFile    string
	operatorID string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "proofcalc",
	Short: "Proof and dilution water calculator",
	Long: `proofcalc computes how much water to add to distilled spirits to bring
them to proof, from a weight and a proof reading and a gauging table of
conversion factors.

Run "proofcalc serve" for the JSON API, or use the calc and log commands
directly from a shell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		// the server logs JSON; one-shot commands log to stderr for humans
		if cmd == serveCmd {
			logger, err = logging.New(cfg.LogLevel)
		} else {
			logger, err = logging.NewCLI(cfg.LogLevel)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load instead of .env")
	rootCmd.PersistentFlags().StringVar(&operatorID, "operator", "", "operator ID recorded with calculations and used to scope the log")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, calcCmd, logCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
