package cmd

import (
	"context"
	"fmt"

	"github.com/droidrun/droid-cli/internal/adb"
	"github.com/droidrun/droid-cli/internal/model"
	"github.com/droidrun/droid-cli/internal/output"
	"github.com/droidrun/droid-cli/internal/portal"
	"github.com/spf13/cobra"
)

// deviceClient builds an adb client from the root --serial flag. With no
// serial the first authorized device is used.
func deviceClient(cmd *cobra.Command) (*adb.Client, error) {
	serial, _ := cmd.Flags().GetString("serial")
	if serial == "" {
		ctx, cancel := context.WithTimeout(context.Background(), adb.DefaultTimeout)
		defer cancel()
		// Best effort: adb resolves the device itself when only one is
		// connected, so a detection failure is not fatal here.
		if s, err := adb.DetectSerial(ctx); err == nil {
			serial = s
		}
	}
	return adb.New(serial)
}

// querySnapshot fetches one accessibility snapshot and returns both the raw
// tree (needed for occlusion checks) and the flattened element list. With
// all set, filtering is bypassed entirely.
func querySnapshot(ctx context.Context, client *adb.Client, full, all bool) ([]model.Node, []*model.Node, error) {
	p := portal.NewClient(client)
	tree, err := p.QueryTreeRetry(ctx, portal.QueryOptions{Full: full})
	if err != nil {
		return nil, nil, err
	}
	if all {
		return tree, model.FlattenAll(tree), nil
	}
	width, height := client.ScreenSize(ctx)
	cfg := model.DefaultFilterConfig(width, height)
	return tree, model.Flatten(tree, cfg), nil
}

// resolveTarget finds the element addressed by --index or positional text.
func resolveTarget(tree []model.Node, text string, exact bool, index int) (*model.Node, error) {
	if index > 0 {
		n := model.FindByIndex(tree, index)
		if n == nil {
			return nil, fmt.Errorf("no element with index %d", index)
		}
		return n, nil
	}
	if text == "" {
		return nil, fmt.Errorf("specify element text or --index")
	}
	n := model.FindByText(tree, text, exact)
	if n == nil {
		return nil, fmt.Errorf("no element matching %q", text)
	}
	return n, nil
}

// targetPoint computes where to tap the target. With avoidOverlap the
// occlusion-aware point is used; otherwise the raw bounds center.
func targetPoint(target *model.Node, tree []model.Node, avoidOverlap bool) (x, y int, err error) {
	if avoidOverlap {
		x, y, ok := model.TapPoint(target, tree)
		if !ok {
			return 0, 0, fmt.Errorf("element %d has no usable bounds", target.Index)
		}
		return x, y, nil
	}
	r, ok := target.Rect()
	if !ok {
		return 0, 0, fmt.Errorf("element %d has no usable bounds", target.Index)
	}
	x, y = r.Center()
	return x, y, nil
}

// ActionResult is the structured output of an input command.
type ActionResult struct {
	OK       bool   `json:"ok"                 yaml:"ok"`
	Action   string `json:"action"             yaml:"action"`
	X        int    `json:"x"                  yaml:"x"`
	Y        int    `json:"y"                  yaml:"y"`
	Element  string `json:"element,omitempty"  yaml:"element,omitempty"`
	Index    int    `json:"index,omitempty"    yaml:"index,omitempty"`
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// printResult prints a terse line under text format and the structured
// value otherwise.
func printResult(textLine string, v interface{}) error {
	if output.OutputFormat == output.FormatText {
		fmt.Println(textLine)
		return nil
	}
	return output.Print(v)
}

// Untyped parameter extraction for MCP tool arguments, which arrive as
// map[string]interface{} with JSON number semantics.

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func floatParam(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return def
}
