package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/droidrun/droid-cli/internal/model"
	"github.com/spf13/cobra"
)

var tapWindowCmd = &cobra.Command{
	Use:   "tap-window NAME",
	Short: "Tap the center of a window's touchable region",
	Long: `Find a window by name (case-insensitive substring) in the window
manager state and tap the center of its touchable region. Useful for
overlays like bubbles that never appear in the accessibility tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runTapWindow,
}

func init() {
	rootCmd.AddCommand(tapWindowCmd)
	tapWindowCmd.Flags().Bool("long-press", false, "Long-press instead of tap")
	tapWindowCmd.Flags().Int("duration", 1500, "Long-press duration in milliseconds")
}

func runTapWindow(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	longPress, _ := cmd.Flags().GetBool("long-press")
	durationMs, _ := cmd.Flags().GetInt("duration")

	ctx := context.Background()
	dump, err := client.DumpWindows(ctx)
	if err != nil {
		return err
	}

	windows := model.ParseWindows(dump)
	target := model.FindWindow(windows, args[0])
	if target == nil {
		return fmt.Errorf("no window matching %q", args[0])
	}

	x, y := target.Center[0], target.Center[1]
	action := "tap"
	if longPress {
		action = "longpress"
		duration := time.Duration(durationMs) * time.Millisecond
		if err := client.LongPress(ctx, x, y, duration); err != nil {
			return err
		}
	} else {
		if err := client.Tap(ctx, x, y); err != nil {
			return err
		}
	}
	return printResult(
		fmt.Sprintf("Tapped window %q at (%d, %d)", target.Name, x, y),
		ActionResult{OK: true, Action: action, X: x, Y: y, Element: target.Name},
	)
}
