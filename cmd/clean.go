// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gerdus/tusfs/pkg/storage/filestore"
)

func init() {
	cleanCmd.Flags().Duration("max_age", time.Hour, "Remove staging artifacts older than this")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove stale staging artifacts left behind by crashed writes",
	Run: func(cmd *cobra.Command, args []string) {
		root := storageRoot(cmd)
		maxAge := NewFlagLoader(cmd).Duration("max_age")
		if maxAge <= 0 {
			maxAge = time.Hour
		}

		fs, err := filestore.New(filestore.Config{Root: root})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open storage root")
		}
		defer fs.Close()

		removed, err := fs.CleanStaging(cmd.Context(), maxAge)
		if err != nil {
			log.Fatal().Err(err).Msg("staging cleanup failed")
		}
		fmt.Printf("removed %d stale staging artifact(s)\n", removed)
	},
}
