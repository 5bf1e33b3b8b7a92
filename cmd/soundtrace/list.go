package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every song registered in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer svc.Close()

		songs, err := svc.ListSongs(context.Background())
		if err != nil {
			return fmt.Errorf("listing songs: %w", err)
		}

		if len(songs) == 0 {
			fmt.Println("catalog is empty")
			return nil
		}

		fmt.Printf("%d song(s):\n\n", len(songs))
		for i, song := range songs {
			fmt.Printf("%d. %q by %q (id: %s)\n", i+1, song.Title, song.Artist, song.ID)
			if song.YouTubeID != "" {
				fmt.Printf("   youtube: https://youtube.com/watch?v=%s\n", song.YouTubeID)
			}
			if song.DurationMs > 0 {
				seconds := song.DurationMs / 1000
				fmt.Printf("   duration: %d:%02d\n", seconds/60, seconds%60)
			}
		}
		return nil
	},
}
