package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tuplex/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the tuplex analysis cache",
	Long:  "Remove cached analysis reports from the standard cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("tuplex", "")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache cleared")
	return nil
}
