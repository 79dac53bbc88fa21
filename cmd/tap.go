package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tapCmd = &cobra.Command{
	Use:   "tap [text]",
	Short: "Tap an element or a coordinate",
	Long: `Tap a UI element found by text (case-insensitive substring by default)
or by --index, or tap absolute coordinates with --coords. Element taps aim
for a point not covered by elements drawn above the target; pass
--avoid-overlap=false to always use the bounds center.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTap,
}

func init() {
	rootCmd.AddCommand(tapCmd)
	tapCmd.Flags().Int("index", 0, "Tap element by index (from observe)")
	tapCmd.Flags().Bool("exact", false, "Require exact text match")
	tapCmd.Flags().IntSlice("coords", nil, "Tap absolute coordinates: --coords X,Y")
	tapCmd.Flags().Bool("avoid-overlap", true, "Aim for a point not covered by overlapping elements")
	tapCmd.Flags().Bool("ensure-awake", false, "Wake the screen before tapping")
}

func runTap(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("index")
	exact, _ := cmd.Flags().GetBool("exact")
	coords, _ := cmd.Flags().GetIntSlice("coords")
	avoidOverlap, _ := cmd.Flags().GetBool("avoid-overlap")
	ensureAwake, _ := cmd.Flags().GetBool("ensure-awake")

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
		if err := client.Tap(ctx, x, y); err != nil {
			return err
		}
		return printResult(
			fmt.Sprintf("Tapped (%d, %d)", x, y),
			ActionResult{OK: true, Action: "tap", X: x, Y: y},
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
	if err := client.Tap(ctx, x, y); err != nil {
		return err
	}
	return printResult(
		fmt.Sprintf("Tapped %q at (%d, %d)", target.Label(), x, y),
		ActionResult{OK: true, Action: "tap", X: x, Y: y, Element: target.Label(), Index: target.Index},
	)
}
