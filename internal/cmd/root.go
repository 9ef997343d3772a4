package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matthieukhl/shopfront/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Shopfront - e-commerce REST API",
	Long: `Shopfront serves a small e-commerce catalog over HTTP: customers,
suppliers, products with their per-supplier prices, and customer orders.

Run "shopfront setup-db" once to create the tables and sample data, then
"shopfront serve" to start the API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: config.yaml in ./deploy, ., $HOME/.shopfront or /etc/shopfront)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration with the command's flags layered on top.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	v := config.New(cfgFile)

	if f := flags.Lookup("addr"); f != nil {
		if err := v.BindPFlag("server.addr", f); err != nil {
			return nil, fmt.Errorf("failed to bind --addr: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
