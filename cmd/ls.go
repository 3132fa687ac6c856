// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gerdus/tusfs/pkg/storage/filestore"
	"github.com/gerdus/tusfs/pkg/storage/metastore"
)

func init() {
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List uploads in a storage root",
	Run: func(cmd *cobra.Command, args []string) {
		root := storageRoot(cmd)
		ctx := cmd.Context()

		meta, err := metastore.NewFile(root)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open storage root")
		}
		defer meta.Close()

		fs, err := filestore.New(filestore.Config{Root: root, Meta: meta})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open storage root")
		}
		defer fs.Close()

		uploads, err := meta.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to list uploads")
		}
		sort.Slice(uploads, func(i, j int) bool { return uploads[i].CreatedAt < uploads[j].CreatedAt })

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tOFFSET\tSIZE\tSTATE")
		for _, u := range uploads {
			resolved, err := fs.GetOffset(ctx, u.ID)
			if err != nil {
				fmt.Fprintf(w, "%s\t-\t%s\t%s\n", u.ID, sizeColumn(u.Size, u.SizeIsDeferred), "data missing")
				continue
			}

			state := "partial"
			if resolved.IsComplete() {
				state = "complete"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				resolved.ID,
				humanize.IBytes(uint64(resolved.Offset)),
				sizeColumn(resolved.Size, resolved.SizeIsDeferred),
				state)
		}
		w.Flush()
	},
}

func sizeColumn(size int64, deferred bool) string {
	if deferred {
		return "deferred"
	}
	return humanize.IBytes(uint64(size))
}
