package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/droidrun/droid-cli/internal/model"
	"github.com/droidrun/droid-cli/internal/output"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List floating overlay windows",
	Long: `Parse the window manager state (dumpsys window windows) and list
floating overlays such as bubbles and picture-in-picture windows. Use --all
to list every window instead.`,
	RunE: runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Bool("all", false, "List every window, not just overlays")
	windowsCmd.Flags().String("filter", "", "Only windows whose name contains this substring")
	windowsCmd.Flags().Bool("json", false, "Emit JSON records (shorthand for --format json)")
}

func runWindows(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	filter, _ := cmd.Flags().GetString("filter")
	asJSON, _ := cmd.Flags().GetBool("json")

	dump, err := client.DumpWindows(context.Background())
	if err != nil {
		return err
	}

	windows := selectWindows(model.ParseWindows(dump), all, filter)

	if asJSON {
		return output.PrintJSON(windows)
	}
	if output.OutputFormat != output.FormatText {
		return output.Print(windows)
	}
	if len(windows) == 0 {
		fmt.Println("No windows found")
		return nil
	}
	for _, w := range windows {
		fmt.Printf("%s center=(%d,%d) region=(%d,%d,%d,%d)\n",
			w.Name, w.Center[0], w.Center[1],
			w.TouchableRegion.Left, w.TouchableRegion.Top,
			w.TouchableRegion.Right, w.TouchableRegion.Bottom)
	}
	return nil
}

// selectWindows picks which parsed windows to show. A name filter searches
// every window, not just overlays, so full-screen app windows stay
// reachable; without one, only overlays are shown unless all is set.
func selectWindows(windows []model.Window, all bool, filter string) []model.Window {
	if filter != "" {
		needle := strings.ToLower(filter)
		var kept []model.Window
		for _, w := range windows {
			if strings.Contains(strings.ToLower(w.Name), needle) {
				kept = append(kept, w)
			}
		}
		return kept
	}
	if all {
		return windows
	}
	return model.FilterOverlayWindows(windows)
}
