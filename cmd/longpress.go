package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var longpressCmd = &cobra.Command{
	Use:   "longpress [text]",
	Short: "Long-press an element or a coordinate",
	Long: `Long-press a UI element found by text or --index, or absolute
coordinates with --coords. Implemented as a swipe with equal start and end
points held for --duration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLongpress,
}

func init() {
	rootCmd.AddCommand(longpressCmd)
	longpressCmd.Flags().Int("index", 0, "Target element by index (from observe)")
	longpressCmd.Flags().Bool("exact", false, "Require exact text match")
	longpressCmd.Flags().IntSlice("coords", nil, "Long-press absolute coordinates: --coords X,Y")
	longpressCmd.Flags().Bool("avoid-overlap", true, "Aim for a point not covered by overlapping elements")
	longpressCmd.Flags().Bool("ensure-awake", false, "Wake the screen first")
	longpressCmd.Flags().Int("duration", 1500, "Press duration in milliseconds")
}

func runLongpress(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("index")
	exact, _ := cmd.Flags().GetBool("exact")
	coords, _ := cmd.Flags().GetIntSlice("coords")
	avoidOverlap, _ := cmd.Flags().GetBool("avoid-overlap")
	ensureAwake, _ := cmd.Flags().GetBool("ensure-awake")
	durationMs, _ := cmd.Flags().GetInt("duration")
	duration := time.Duration(durationMs) * time.Millisecond

	var text string
	if len(args) > 0 {
		text = args[0]
	}

	ctx := context.Background()

	if ensureAwake {
		client.WakeScreen(ctx)
	}

	if len(coords) > 0 {
		if len(coords) != 2 {
			return fmt.Errorf("--coords takes exactly two values: X,Y")
		}
		x, y := coords[0], coords[1]
		if err := client.LongPress(ctx, x, y, duration); err != nil {
			return err
		}
		return printResult(
			fmt.Sprintf("Long-pressed (%d, %d) for %dms", x, y, durationMs),
			ActionResult{OK: true, Action: "longpress", X: x, Y: y, Duration: duration.String()},
		)
	}

	tree, _, err := querySnapshot(ctx, client, false, false)
	if err != nil {
		return err
	}
	target, err := resolveTarget(tree, text, exact, index)
	if err != nil {
		return err
	}
	x, y, err := targetPoint(target, tree, avoidOverlap)
	if err != nil {
		return err
	}
	if err := client.LongPress(ctx, x, y, duration); err != nil {
		return err
	}
	return printResult(
		fmt.Sprintf("Long-pressed %q at (%d, %d) for %dms", target.Label(), x, y, durationMs),
		ActionResult{OK: true, Action: "longpress", X: x, Y: y, Element: target.Label(), Index: target.Index, Duration: duration.String()},
	)
}
