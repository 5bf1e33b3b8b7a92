package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <song-id>",
	Short: "Remove a song and its postings from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer svc.Close()

		ctx := context.Background()
		song, err := svc.GetSong(ctx, args[0])
		if err != nil {
			return fmt.Errorf("song not found: %w", err)
		}

		if err := svc.DeleteSong(ctx, args[0]); err != nil {
			return fmt.Errorf("deleting song: %w", err)
		}

		fmt.Printf("deleted %q by %q (id: %s)\n", song.Title, song.Artist, song.ID)
		return nil
	},
}
