// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gerdus/tusfs/pkg/storage/filestore"
	"github.com/gerdus/tusfs/pkg/uperr"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info ID",
	Short: "Show one upload's record and current offset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := storageRoot(cmd)
		id := args[0]

		fs, err := filestore.New(filestore.Config{Root: root})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open storage root")
		}
		defer fs.Close()

		u, err := fs.GetOffset(cmd.Context(), id)
		if err != nil {
			var e *uperr.Error
			if errors.As(err, &e) {
				log.Fatal().Str("kind", e.Kind.Code()).Msgf("cannot read upload %s", id)
			}
			log.Fatal().Err(err).Msgf("cannot read upload %s", id)
		}

		fmt.Printf("ID:         %s\n", u.ID)
		fmt.Printf("Offset:     %s (%d bytes)\n", humanize.IBytes(uint64(u.Offset)), u.Offset)
		if u.SizeIsDeferred {
			fmt.Printf("Size:       deferred\n")
		} else {
			fmt.Printf("Size:       %s (%d bytes)\n", humanize.IBytes(uint64(u.Size)), u.Size)
			fmt.Printf("Complete:   %v\n", u.IsComplete())
		}
		fmt.Printf("Created:    %s\n", humanize.Time(time.Unix(u.CreatedAt, 0)))
		if len(u.MetaData) > 0 {
			fmt.Println("Metadata:")
			for k, v := range u.MetaData {
				fmt.Printf("  %s: %s\n", k, v)
			}
		}
	},
}
