package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <audio-file>",
	Short: "Identify a clip against the registered catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer svc.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		results, err := svc.Identify(ctx, args[0])
		if err != nil {
			return fmt.Errorf("identifying audio: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("no match found")
			return nil
		}

		fmt.Printf("%d candidate(s):\n\n", len(results))
		for i, r := range results {
			fmt.Printf("%d. %q by %q\n", i+1, r.Song.Title, r.Song.Artist)
			fmt.Printf("   confidence: %.1f%%\n", r.Confidence*100)
			if r.Song.YouTubeID != "" {
				fmt.Printf("   youtube:    https://youtube.com/watch?v=%s\n", r.Song.YouTubeID)
			}
			fmt.Println()
		}
		return nil
	},
}
