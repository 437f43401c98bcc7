package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=abc123 -X main.date=2026-01-01"
var (
	version = ""
	commit  = ""
	date    = ""
)

// getVersion returns the version string, preferring the ldflags value and
// falling back to the module version recorded in build info.
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// getCommit returns the short commit hash, preferring the ldflags value
// and falling back to VCS info embedded in the binary.
func getCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				if len(setting.Value) >= 7 {
					return setting.Value[:7]
				}
				return setting.Value
			}
		}
	}
	return "unknown"
}

// getDate returns the build date, preferring the ldflags value and falling
// back to the VCS commit time.
func getDate() string {
	if date != "" {
		return date
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				return setting.Value
			}
		}
	}
	return "unknown"
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gather version %s\n", getVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", getCommit())
			fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", getDate())
		},
	}
}
