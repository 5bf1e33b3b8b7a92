package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakmoss/soundtrace/internal/audio"
)

var addYouTubeCmd = &cobra.Command{
	Use:   "add-youtube <url>",
	Short: "Download a YouTube video's audio and register it in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		downloadDir := tempDir
		if downloadDir == "" {
			downloadDir = "."
		}

		fmt.Println("fetching from youtube...")
		rawPath, meta, err := audio.DownloadYouTubeAudio(ctx, args[0], downloadDir)
		if err != nil {
			return fmt.Errorf("downloading youtube audio: %w", err)
		}

		svc, err := newService()
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer svc.Close()

		song, err := svc.AddSong(ctx, rawPath, meta.Title, meta.Artist, meta.ID)
		if err != nil {
			return fmt.Errorf("adding song: %w", err)
		}

		fmt.Printf("added %q by %q\n", song.Title, song.Artist)
		fmt.Printf("  id:      %s\n", song.ID)
		fmt.Printf("  youtube: %s\n", meta.ID)
		return nil
	},
}
