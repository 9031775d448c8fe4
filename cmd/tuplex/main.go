package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tuplex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tuplex",
	Short: "Tuple storage-type analyzer",
	Long:  `Tuplex computes the storage types a generic tuple factory infers for call-site arguments`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
