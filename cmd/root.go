package cmd

import (
	"fmt"
	"os"

	"github.com/droidrun/droid-cli/internal/output"
	"github.com/droidrun/droid-cli/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "droid-cli",
	Short: "Read and interact with Android UI elements",
	Long:  "A CLI tool that lets AI agents read and interact with Android UI elements via the droidrun-portal accessibility provider over adb.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().StringP("serial", "s", "", "Device serial (default: first connected device)")
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags (e.g. screenshot --format png/jpg).
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "text", "":
			output.OutputFormat = output.FormatText
		case "json":
			output.OutputFormat = output.FormatJSON
		case "yaml":
			output.OutputFormat = output.FormatYAML
		default:
			return fmt.Errorf("unsupported format: %s (use text, json, or yaml)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
