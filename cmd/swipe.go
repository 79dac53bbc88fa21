package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var swipeCmd = &cobra.Command{
	Use:   "swipe X1 Y1 X2 Y2",
	Short: "Swipe between two coordinates",
	Args:  cobra.ExactArgs(4),
	RunE:  runSwipe,
}

func init() {
	rootCmd.AddCommand(swipeCmd)
	swipeCmd.Flags().Int("duration", 300, "Swipe duration in milliseconds")
	swipeCmd.Flags().Bool("ensure-awake", false, "Wake the screen first")
}

func runSwipe(cmd *cobra.Command, args []string) error {
	coords := make([]int, 4)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q", arg)
		}
		coords[i] = v
	}

	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	durationMs, _ := cmd.Flags().GetInt("duration")
	ensureAwake, _ := cmd.Flags().GetBool("ensure-awake")

	ctx := context.Background()
	if ensureAwake {
		client.WakeScreen(ctx)
	}

	duration := time.Duration(durationMs) * time.Millisecond
	if err := client.Swipe(ctx, coords[0], coords[1], coords[2], coords[3], duration); err != nil {
		return err
	}
	return printResult(
		fmt.Sprintf("Swiped (%d, %d) -> (%d, %d) in %dms", coords[0], coords[1], coords[2], coords[3], durationMs),
		ActionResult{OK: true, Action: "swipe", X: coords[2], Y: coords[3], Duration: duration.String()},
	)
}
