// Package portal talks to the droidrun-portal content provider on the device.
package portal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/droidrun/droid-cli/internal/adb"
	"github.com/droidrun/droid-cli/internal/model"
)

// Content-provider URIs exposed by the portal app.
const (
	TreeURI          = "content://com.droidrun.portal/a11y_tree"
	TreeFullURI      = "content://com.droidrun.portal/a11y_tree_full"
	PhoneStateURI    = "content://com.droidrun.portal/phone_state"
	KeyboardInputURI = "content://com.droidrun.portal/keyboard/input"
)

// Retry defaults for tree queries. The provider occasionally returns an
// empty snapshot right after a UI transition.
const (
	DefaultRetries    = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// envelopePrefix starts every content-provider query response line.
const envelopePrefix = "Row: 0 result="

// envelope is the outer JSON of a query response; Result is itself a
// JSON-encoded string.
type envelope struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

// ParseEnvelope unwraps a `Row: 0 result=<JSON>` response line and returns
// the inner JSON payload.
func ParseEnvelope(raw string) (json.RawMessage, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, fmt.Errorf("empty response from content provider")
	}
	if !strings.HasPrefix(line, envelopePrefix) {
		short := line
		if len(short) > 80 {
			short = short[:80]
		}
		return nil, fmt.Errorf("unexpected response format: %s", short)
	}

	var outer envelope
	if err := json.Unmarshal([]byte(line[len(envelopePrefix):]), &outer); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if outer.Status != "success" {
		return nil, fmt.Errorf("query failed with status %q", outer.Status)
	}
	return json.RawMessage(outer.Result), nil
}

// DecodeTree parses the inner payload of a tree query into a normalized
// forest. The lightweight variant is a list of roots with indices assigned
// by the device; the full variant is a single root object that needs
// post-parse index assignment.
func DecodeTree(payload json.RawMessage, full bool) ([]model.Node, error) {
	if full {
		var root model.Node
		if err := json.Unmarshal(payload, &root); err != nil {
			// Some portal builds return the full tree as a list too.
			var roots []model.Node
			if listErr := json.Unmarshal(payload, &roots); listErr != nil {
				return nil, fmt.Errorf("decode full tree: %w", err)
			}
			model.AssignIndices(roots)
			return roots, nil
		}
		tree := []model.Node{root}
		model.AssignIndices(tree)
		return tree, nil
	}

	var roots []model.Node
	if err := json.Unmarshal(payload, &roots); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return roots, nil
}

// PhoneState is the device's current foreground state.
type PhoneState struct {
	CurrentApp      string          `json:"currentApp"      yaml:"currentApp"`
	ActivityName    string          `json:"activityName"    yaml:"activityName"`
	KeyboardVisible bool            `json:"keyboardVisible" yaml:"keyboardVisible"`
	FocusedElement  *FocusedElement `json:"focusedElement"  yaml:"focusedElement,omitempty"`
}

// FocusedElement identifies the element holding input focus.
type FocusedElement struct {
	ResourceID string `json:"resourceId" yaml:"resourceId,omitempty"`
	ClassName  string `json:"className"  yaml:"className,omitempty"`
	Text       string `json:"text"       yaml:"text,omitempty"`
}

// Client issues portal queries over an adb transport.
type Client struct {
	ADB *adb.Client
}

// NewClient wraps an adb client.
func NewClient(adbClient *adb.Client) *Client {
	return &Client{ADB: adbClient}
}

// query runs a content query against the given URI and unwraps the envelope.
func (c *Client) query(ctx context.Context, uri string) (json.RawMessage, error) {
	out, err := c.ADB.Shell(ctx, "content", "query", "--uri", uri)
	if err != nil {
		return nil, err
	}
	return ParseEnvelope(out)
}

// QueryTree fetches one accessibility snapshot. full selects the
// a11y_tree_full variant with state flags.
func (c *Client) QueryTree(ctx context.Context, full bool) ([]model.Node, error) {
	uri := TreeURI
	if full {
		uri = TreeFullURI
	}
	payload, err := c.query(ctx, uri)
	if err != nil {
		return nil, err
	}
	return DecodeTree(payload, full)
}

// QueryOptions configures QueryTreeRetry.
type QueryOptions struct {
	Full    bool
	Retries int           // attempts; 0 means DefaultRetries
	Delay   time.Duration // delay between attempts; 0 means DefaultRetryDelay
}

// QueryTreeRetry fetches a snapshot, retrying transient failures. The last
// error is returned once attempts are exhausted.
func (c *Client) QueryTreeRetry(ctx context.Context, opts QueryOptions) ([]model.Node, error) {
	retries := opts.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		tree, err := c.QueryTree(ctx, opts.Full)
		if err == nil && len(tree) > 0 {
			return tree, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("empty accessibility tree")
		}
		if attempt < retries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("query accessibility tree: %w", lastErr)
}

// PhoneState queries the current app, activity, and keyboard status.
func (c *Client) PhoneState(ctx context.Context) (*PhoneState, error) {
	payload, err := c.query(ctx, PhoneStateURI)
	if err != nil {
		return nil, err
	}
	var state PhoneState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode phone state: %w", err)
	}
	return &state, nil
}

// InsertArgs builds the content insert arguments for a keyboard input
// operation: UTF-8 text base64-encoded plus the clear-before-typing flag.
func InsertArgs(text string, clear bool) []string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	return []string{
		"content", "insert", "--uri", KeyboardInputURI,
		"--bind", "base64_text:s:" + encoded,
		"--bind", fmt.Sprintf("clear:b:%t", clear),
	}
}

// TypeText delivers text to the focused input via the portal keyboard,
// optionally clearing the field first.
func (c *Client) TypeText(ctx context.Context, text string, clear bool) error {
	_, err := c.ADB.Shell(ctx, InsertArgs(text, clear)...)
	return err
}
