package cmd

import (
	"context"
	"fmt"

	"github.com/droidrun/droid-cli/internal/model"
	"github.com/droidrun/droid-cli/internal/output"
	"github.com/droidrun/droid-cli/internal/portal"
	"github.com/spf13/cobra"
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Read the current UI element tree",
	Long: `Query the device's accessibility tree via the droidrun-portal provider
and print one line per interactive element. Container noise, keyboard
elements, tiny elements, and mostly off-screen elements are filtered out
unless --all is given.`,
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().Bool("all", false, "Show every element, bypassing all filters")
	observeCmd.Flags().Bool("full", false, "Use the full tree variant with state flags")
	observeCmd.Flags().Bool("json", false, "Emit JSON records (shorthand for --format json)")
	observeCmd.Flags().Bool("phone-state", false, "Print current app, activity, and keyboard state instead of the tree")
}

func runObserve(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	full, _ := cmd.Flags().GetBool("full")
	asJSON, _ := cmd.Flags().GetBool("json")
	phoneState, _ := cmd.Flags().GetBool("phone-state")

	ctx := context.Background()

	if phoneState {
		state, err := portal.NewClient(client).PhoneState(ctx)
		if err != nil {
			return err
		}
		if output.OutputFormat == output.FormatText && !asJSON {
			fmt.Printf("app: %s\n", state.CurrentApp)
			fmt.Printf("activity: %s\n", state.ActivityName)
			fmt.Printf("keyboard: %t\n", state.KeyboardVisible)
			if state.FocusedElement != nil {
				fmt.Printf("focused: %s\n", state.FocusedElement.ResourceID)
			}
			return nil
		}
		if asJSON {
			return output.PrintJSON(state)
		}
		return output.Print(state)
	}

	_, flat, err := querySnapshot(ctx, client, full, all)
	if err != nil {
		return err
	}

	if asJSON || output.OutputFormat != output.FormatText {
		records := make([]model.Record, 0, len(flat))
		for _, n := range flat {
			records = append(records, model.FormatRecord(n))
		}
		if asJSON {
			return output.PrintJSON(records)
		}
		return output.Print(records)
	}

	for _, n := range flat {
		fmt.Println(model.FormatLine(n, full))
	}
	return nil
}
