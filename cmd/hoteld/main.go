package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Ferxas/chris-hotel-web-app/config"
)

const defaultConfigPath = "./config/config.yaml"

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "hoteld",
		Short: "Hotel operations backend",
		Long: `hoteld serves the hotel operations dashboard: room states, problem
reports and their maintenance archive, cleaning logs, and staff device
messages delivered as push notifications.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML); defaults to $CONFIG_PATH or "+defaultConfigPath)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API, live feed and push workers",
			RunE: func(cmd *cobra.Command, args []string) error {
				logger, cfg, err := setup(configPath)
				if err != nil {
					return err
				}
				return serve(logger, cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database tables and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				logger, cfg, err := setup(configPath)
				if err != nil {
					return err
				}
				return migrate(logger, cfg)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("hoteld version %s\n", version)
			},
		},
	)

	return cmd
}

// setup loads .env (when present) and the YAML configuration.
func setup(flagPath string) (*log.Logger, *config.Config, error) {
	logger := log.New(os.Stdout, "hoteld ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Printf("ignoring .env: %v", err)
	}

	configPath := resolveConfigPath(flagPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)
	return logger, cfg, nil
}

func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return defaultConfigPath
}
