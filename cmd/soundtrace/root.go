package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	soundtrace "github.com/oakmoss/soundtrace"
	"github.com/oakmoss/soundtrace/internal/logging"
)

var (
	dbPath  string
	tempDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "soundtrace",
	Short: "Landmark-pair audio fingerprinting and identification",
	Long: `soundtrace fingerprints audio using a constellation of spectral
landmark pairs and matches clips against a catalog of registered songs by
temporal-offset coherence.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		viper.SetEnvPrefix("SOUNDTRACE")
		viper.AutomaticEnv()
		if dbPath == "" {
			dbPath = viper.GetString("db_path")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite catalog (default: soundtrace.sqlite3, env SOUNDTRACE_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&tempDir, "temp-dir", "", "Scratch directory for audio conversion")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(addYouTubeCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

// newService builds a Service using the resolved --db/--temp-dir/--verbose
// flags, shared by every subcommand.
func newService() (*soundtrace.Service, error) {
	opts := []soundtrace.Option{}
	if dbPath != "" {
		opts = append(opts, soundtrace.WithDBPath(dbPath))
	}
	if tempDir != "" {
		opts = append(opts, soundtrace.WithTempDir(tempDir))
	}

	level := logging.InfoLevel
	if verbose {
		level = logging.DebugLevel
	}
	opts = append(opts, soundtrace.WithLogger(logging.New(logging.Config{Level: level, Output: os.Stderr, ReportTime: true})))

	return soundtrace.NewService(opts...)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
