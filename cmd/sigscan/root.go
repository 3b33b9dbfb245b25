package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "sigscan",
	Short: "Sigscan - masked byte-signature scanner",
	Long: `Sigscan locates byte signatures (code fingerprints, magic markers, struct
layouts) inside files and process memory. Signatures support nibble-level
wildcards, e.g. "48 8B ?? 1A" or "E8 ?? ?? ?? ??".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		switch {
		case quiet:
			level = slog.LevelError
		case verbose:
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(sigsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
