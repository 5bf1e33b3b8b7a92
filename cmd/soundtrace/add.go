package main

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addArtist  string
	addYouTube string
)

var addCmd = &cobra.Command{
	Use:   "add <audio-file>",
	Short: "Fingerprint an audio file and register it in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if addTitle == "" || addArtist == "" {
			return fmt.Errorf("--title and --artist are required")
		}

		svc, err := newService()
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer svc.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("fingerprinting"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		)
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					bar.Add(1)
				case <-done:
					return
				}
			}
		}()

		song, err := svc.AddSong(ctx, args[0], addTitle, addArtist, addYouTube)
		close(done)
		bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("adding song: %w", err)
		}

		fmt.Printf("added %q by %q\n", song.Title, song.Artist)
		fmt.Printf("  id:       %s\n", song.ID)
		fmt.Printf("  duration: %dms\n", song.DurationMs)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "Song title (required)")
	addCmd.Flags().StringVar(&addArtist, "artist", "", "Artist name (required)")
	addCmd.Flags().StringVar(&addYouTube, "youtube", "", "YouTube video ID (optional)")
}
