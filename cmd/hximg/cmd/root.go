package cmd

import (
	"fmt"
	"os"

	"hxpanel/internal/buildinfo"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hximg",
	Short: "Image tools for the hxpanel demo",
	Long: `Converts artwork to the raw RGB565 files the panel reads and exports
the built-in icons for review.

Examples:
  hximg thumb cover.jpg thumb.raw                 # 60x60 list thumbnail
  hximg thumb --size 150 cover.jpg cover.raw      # playback cover
  hximg icons --out icons/                        # PNG of every icon`,
	Version:      buildinfo.Short(),
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func logf(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
