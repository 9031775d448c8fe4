package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tuplex/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format (text|json)")
}

func runVersion(_ *cobra.Command, _ []string) error {
	switch versionFormat {
	case "text":
		fmt.Printf("tuplex %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Printf("  commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Printf("  built:  %s\n", version.BuildDate)
		}
		return nil
	case "json":
		payload := versionPayload{
			Tool:      "tuplex",
			Version:   version.Semver,
			GitCommit: version.GitCommit,
			BuildDate: version.BuildDate,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("invalid format: %q (expected: text|json)", versionFormat)
	}
}
