package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/droidrun/droid-cli/internal/adb"
	"github.com/droidrun/droid-cli/internal/model"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for UI changes and stream diffs as JSONL",
	Long: `Continuously poll the accessibility tree and emit changes (added,
removed, modified elements) as JSONL to stdout.

Each line is a JSON object representing one change event. No output is
emitted when the UI is stable. This is far more token-efficient than
repeatedly calling 'observe'.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop watching.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("full", false, "Use the full tree variant with state flags")
	watchCmd.Flags().Int("interval", 1000, "Polling interval in milliseconds")
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	full, _ := cmd.Flags().GetBool("full")
	intervalMs, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")

	ctx := context.Background()

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	interval := time.Duration(intervalMs) * time.Millisecond
	var deadline time.Time
	if durationSec > 0 {
		deadline = time.Now().Add(time.Duration(durationSec) * time.Second)
	}
	start := time.Now()

	// Initial read to establish baseline
	prev, err := snapshotRecords(ctx, client, full)
	if err != nil {
		return fmt.Errorf("initial read failed: %w", err)
	}

	enc.Encode(map[string]interface{}{
		"type":  "snapshot",
		"ts":    time.Now().Unix(),
		"count": len(prev),
	})

	eventCount := 0

	for {
		if durationSec > 0 && time.Now().After(deadline) {
			break
		}

		time.Sleep(interval)

		curr, err := snapshotRecords(ctx, client, full)
		if err != nil {
			enc.Encode(map[string]interface{}{
				"type":  "error",
				"ts":    time.Now().Unix(),
				"error": err.Error(),
			})
			continue
		}

		diff := model.DiffRecords(prev, curr)
		ts := time.Now().Unix()
		for _, r := range diff.Added {
			enc.Encode(map[string]interface{}{"type": "added", "ts": ts, "element": r})
			eventCount++
		}
		for _, r := range diff.Removed {
			enc.Encode(map[string]interface{}{"type": "removed", "ts": ts, "element": r})
			eventCount++
		}
		for _, c := range diff.Changed {
			enc.Encode(map[string]interface{}{"type": "changed", "ts": ts, "index": c.Index, "text": c.Text, "changes": c.Changes})
			eventCount++
		}

		prev = curr
	}

	elapsed := time.Since(start)
	enc.Encode(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", elapsed.Seconds()),
		"events":  eventCount,
	})

	return nil
}

// snapshotRecords reads one filtered snapshot as flat records.
func snapshotRecords(ctx context.Context, client *adb.Client, full bool) ([]model.Record, error) {
	_, flat, err := querySnapshot(ctx, client, full, false)
	if err != nil {
		return nil, err
	}
	records := make([]model.Record, 0, len(flat))
	for _, n := range flat {
		records = append(records, model.FormatRecord(n))
	}
	return records, nil
}
