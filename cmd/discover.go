package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/discovery"
	"github.com/crxforge/cli/internal/domain"
	"github.com/crxforge/cli/internal/logger"
	"github.com/crxforge/cli/internal/ui"
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover [path]",
	Short: "Discover extension entrypoints in a project",
	Long: `Discover scans the project's entrypoints directory, classifies every file
against the naming conventions, extracts per-entrypoint options and prints
the validated result.

Example usage:
  crxforge discover                      # Discover in current directory
  crxforge discover /path/to/project     # Discover in a specific project
  crxforge discover --serve              # Include the serve-mode virtual background
  crxforge discover --filter popup,ui    # Restrict to the named entrypoints`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().Bool("serve", false, "discover with serve (watch mode) semantics")
	discoverCmd.Flags().StringSlice("filter", nil, "only include the named entrypoints, in the given order")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	bctx, _, err := buildContextFromFlags(cmd, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	outputFormat, _ := cmd.Flags().GetString("output")

	if verbose {
		fmt.Printf("Scanning entrypoints at: %s\n", bctx.EntrypointsDir)
	}

	eps, err := discoverWithSpinner(cmd, bctx, verbose)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eps)
	default:
		fmt.Print(ui.RenderEntrypoints(bctx, eps))
		return nil
	}
}

// discoverWithSpinner runs discovery under the progress spinner unless
// verbose logging is on, in which case plain log lines win.
func discoverWithSpinner(cmd *cobra.Command, bctx config.BuildContext, verbose bool) ([]domain.Entrypoint, error) {
	var log logger.Logger = &logger.NopLogger{}
	if verbose {
		log = &logger.StdoutLogger{}
	}
	d := discovery.New(nil, log)

	ctx := cmd.Context()
	if verbose {
		return d.Discover(ctx, bctx)
	}

	var eps []domain.Entrypoint
	err := ui.RunSpinner(ctx, "Discovering entrypoints...", func() error {
		var e error
		eps, e = d.Discover(ctx, bctx)
		return e
	})
	return eps, err
}

// buildContextFromFlags loads the project config for the optional path
// argument and merges in the command-line overrides.
func buildContextFromFlags(cmd *cobra.Command, args []string) (config.BuildContext, *config.Project, error) {
	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return config.BuildContext{}, nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return config.BuildContext{}, nil, fmt.Errorf("path does not exist: %s", absPath)
	}

	project, err := config.LoadProject(absPath)
	if err != nil {
		return config.BuildContext{}, nil, err
	}

	browser, _ := cmd.Flags().GetString("browser")
	filter, _ := cmd.Flags().GetStringSlice("filter")

	command := config.CommandBuild
	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		command = config.CommandServe
	}

	return project.BuildContext(command, browser, filter), project, nil
}
