package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	intervalArg string
	csvFile     string

	rootCmd = &cobra.Command{
		Use:   "analyzer",
		Short: "Technical indicator and chart pattern analyzer",
		Long: `analyzer computes technical indicators, detects chart patterns and scores
symbols on a watchlist. Run "serve" for the HTTP API, scheduled scans and the
Telegram bot, or "analyze" for a one-off report.`,
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the scheduled watchlist scan and the Telegram bot",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Analyze one symbol and print the indicators as a table",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
)

func init() {
	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "path to the YAML config file")

	analyzeCmd.Flags().StringVarP(&intervalArg, "interval", "i", "1d", "bar interval: 1d or 1wk")
	analyzeCmd.Flags().StringVar(&csvFile, "csv", "", "read bars from this CSV file instead of the configured provider")

	rootCmd.AddCommand(serveCmd, analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
