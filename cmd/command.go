// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gerdus/tusfs/pkg/env"
	"github.com/gerdus/tusfs/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tusfs",
	Short: "tusfs - filesystem-backed resumable upload storage",
	Long: `tusfs is the storage engine behind a resumable-upload service.
It keeps one data artifact and one metadata sidecar per upload in a plain
directory; this CLI inspects and maintains such a storage root.`,
	PersistentPreRun: loadConfiguration,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config_dir", ".", "Directory for configuration files")
	rootCmd.PersistentFlags().String("root", "", "Upload storage root directory")
}

// loadConfiguration wires viper: explicit CLI flags win, then env vars
// (TUSFS_*), then the config file, then defaults.
func loadConfiguration(cmd *cobra.Command, args []string) {
	configDir, _ := cmd.Flags().GetString("config_dir")

	viper.SetConfigName("tusfs")
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("TUSFS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn().Err(err).Msg("failed to read configuration file")
		}
	}

	if env.IsLocal() {
		logger.SetLevel(zerolog.DebugLevel)
	}
}

// storageRoot resolves the storage root with flag precedence and bails
// out when it is missing.
func storageRoot(cmd *cobra.Command) string {
	root := NewFlagLoader(cmd).String("root")
	if root == "" {
		log.Fatal().Msg("storage root required (--root flag, TUSFS_ROOT env, or config file)")
	}
	return root
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
