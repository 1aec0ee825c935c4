package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crxforge/cli/internal/manifest"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest [path]",
	Short: "Generate the extension manifest from discovered entrypoints",
	Long: `Manifest runs entrypoint discovery and renders the resulting manifest.json
for the configured target browser and manifest version.

Example usage:
  crxforge manifest                   # Print manifest.json to stdout
  crxforge manifest --write           # Write it into the output directory
  crxforge manifest -b firefox        # Target a different browser`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)

	manifestCmd.Flags().Bool("write", false, "write manifest.json into the output directory")
	manifestCmd.Flags().StringSlice("filter", nil, "only include the named entrypoints, in the given order")
}

func runManifest(cmd *cobra.Command, args []string) error {
	bctx, project, err := buildContextFromFlags(cmd, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	eps, err := discoverWithSpinner(cmd, bctx, verbose)
	if err != nil {
		return err
	}

	m, err := manifest.Build(project.Manifest, bctx, eps)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if write, _ := cmd.Flags().GetBool("write"); write {
		if err := os.MkdirAll(bctx.OutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		target := filepath.Join(bctx.OutDir, "manifest.json")
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		fmt.Printf("Wrote %s\n", target)
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}
