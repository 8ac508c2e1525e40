// @title Cooperative Voting API
// @version 1.0
// @description Backend API for cooperative assemblies: members, agenda items, timed voting sessions and results
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/alex-pricope/coop-voting-system/docs"

	"github.com/alex-pricope/coop-voting-system/api"
	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "coop-voting",
		Short:         "Cooperative voting backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.GetViper()
			if err := loadConfig(v, configFile); err != nil {
				return err
			}

			// Read config
			config := api.ReadConfig(v)
			logging.SetLevel(config.LogLevel)

			// Start the service (inside the lambda)
			service := api.NewServer(config)
			return service.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml)")
	return cmd
}

// loadConfig reads configFile, or config.yaml from the working dir when empty. A missing
// default file is fine since every key has a default and can come from the environment.
func loadConfig(v *viper.Viper, configFile string) error {
	api.SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			logging.Log.Warn("no config file found, using defaults and environment")
			return nil
		}
		logging.Log.Errorf("Failed to read config file: %v", err)
		return err
	}
	logging.Log.Infof("Using config file %s", v.ConfigFileUsed())
	return nil
}

func main() {
	logging.BoostrapLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logging.Log.Errorf("service stopped: %v", err)
		stop()
		os.Exit(1)
	}
}
