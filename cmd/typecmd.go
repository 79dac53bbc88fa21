package cmd

import (
	"context"
	"fmt"

	"github.com/droidrun/droid-cli/internal/portal"
	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type TEXT",
	Short: "Type text into the focused input",
	Long: `Deliver text to the focused input field through the droidrun-portal
keyboard. Text is transported base64-encoded, so any UTF-8 content is safe.
Requires the portal keyboard to be the active input method.`,
	Args: cobra.ExactArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().Bool("clear", false, "Clear the field before typing")
	typeCmd.Flags().Bool("ensure-awake", false, "Wake the screen first")
}

func runType(cmd *cobra.Command, args []string) error {
	client, err := deviceClient(cmd)
	if err != nil {
		return err
	}

	clear, _ := cmd.Flags().GetBool("clear")
	ensureAwake, _ := cmd.Flags().GetBool("ensure-awake")

	ctx := context.Background()
	if ensureAwake {
		client.WakeScreen(ctx)
	}

	if err := portal.NewClient(client).TypeText(ctx, args[0], clear); err != nil {
		return err
	}
	return printResult(
		fmt.Sprintf("Typed %d characters", len([]rune(args[0]))),
		ActionResult{OK: true, Action: "type"},
	)
}
