package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gatherctl/gather/internal/config"
)

//go:embed templates/gather.yaml
var sourcesTemplate []byte

// NewInitCmd creates the init command, which writes a starter sources
// file for the user to edit.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sources file with the default collection targets",
		Long: `Create a sources file declaring what the collectors fetch: news
categories, forecast cities, and tracked symbols with alert bounds.

By default the file is written as ` + config.DefaultSourcesFile + ` in the current
directory, where every gather command picks it up automatically.`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultSourcesFile, "Output file path")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	return cmd
}

// runInitCmd writes the embedded sources template.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	if !force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		}
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(output, sourcesTemplate, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", output)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit it to adjust categories, cities, symbols, and alert bounds.")
	return nil
}
