package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crxforge",
	Short: "Convention-driven browser extension tooling",
	Long: `Crxforge discovers browser-extension entrypoints (background, popup,
content scripts, ...) from file naming conventions inside the entrypoints
directory and derives the extension manifest from them.

Entrypoints are recognized by shape: popup.html, background.ts,
overlay.content.ts, named.sidepanel/index.html and so on. Files matching no
convention are ignored.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json)")
	rootCmd.PersistentFlags().StringP("browser", "b", "", "target browser (defaults to the project config)")
}
