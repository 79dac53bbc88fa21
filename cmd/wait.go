package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/droidrun/droid-cli/internal/model"
	"github.com/droidrun/droid-cli/internal/output"
	"github.com/droidrun/droid-cli/internal/portal"
	"github.com/spf13/cobra"
)

// WaitResult is the structured output of a wait command.
type WaitResult struct {
	OK       bool   `json:"ok"                  yaml:"ok"`
	Action   string `json:"action"              yaml:"action"`
	Elapsed  string `json:"elapsed"             yaml:"elapsed"`
	Match    string `json:"match,omitempty"     yaml:"match,omitempty"`
	Index    int    `json:"index,omitempty"     yaml:"index,omitempty"`
	TimedOut bool   `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait TEXT",
	Short: "Wait for an element with the given text to appear",
	Long: `Poll the accessibility tree until an element matching TEXT appears or
the timeout is reached. Transient query failures are retried silently until
the deadline.`,
	Args: cobra.ExactArgs(1),
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().Bool("exact", false, "Require exact text match")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the element is no longer present")
	waitCmd.Flags().Int("timeout", 10, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 1000, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	exact, _ := cmd.Flags().GetBool("exact")
	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	text := args[0]
	timeout := time.Duration(timeoutSec) * time.Second
	interval := time.Duration(intervalMs) * time.Millisecond
	deadline := time.Now().Add(timeout)
	start := time.Now()

	p := portal.NewClient(client)

	for {
		// One query per poll; each attempt is bounded by the adb client's
		// own timeout, and failures just count against the deadline.
		tree, err := p.QueryTree(context.Background(), false)
		if err == nil {
			found := model.FindByText(tree, text, exact)
			conditionMet := found != nil
			if gone {
				conditionMet = found == nil
			}
			if conditionMet {
				elapsed := time.Since(start)
				result := WaitResult{
					OK:      true,
					Action:  "wait",
					Elapsed: fmt.Sprintf("%.1fs", elapsed.Seconds()),
					Match:   text,
				}
				if found != nil {
					result.Index = found.Index
				}
				line := fmt.Sprintf("Found %q after %s", text, result.Elapsed)
				if gone {
					line = fmt.Sprintf("%q gone after %s", text, result.Elapsed)
				}
				return printResult(line, result)
			}
		}

		if time.Now().After(deadline) {
			elapsed := time.Since(start)
			// Print the result, then return an error for non-zero exit code.
			result := WaitResult{
				OK:       false,
				Action:   "wait",
				Elapsed:  fmt.Sprintf("%.1fs", elapsed.Seconds()),
				Match:    text,
				TimedOut: true,
			}
			if output.OutputFormat != output.FormatText {
				_ = output.Print(result)
			}
			return fmt.Errorf("timed out after %s waiting for %q", timeout, text)
		}

		time.Sleep(interval)
	}
}
