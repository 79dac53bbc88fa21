package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/droidrun/droid-cli/internal/adb"
	"github.com/droidrun/droid-cli/internal/model"
	"github.com/droidrun/droid-cli/internal/portal"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the device clients and cache.
type mcpServer struct {
	adb      *adb.Client
	portal   *portal.Client
	cache    *mcpTreeCache
	deviceMu sync.Mutex
	mcp      *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// newMCPServer creates and configures an MCP server with all droid-cli tools.
func newMCPServer(client *adb.Client, cfg MCPConfig) (*mcpServer, error) {
	s := &mcpServer{
		adb:    client,
		portal: portal.NewClient(client),
		cache:  newMCPTreeCache(cfg.CacheTTL),
	}

	s.mcp = mcpserver.NewMCPServer(
		"droid-cli",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// observe
	s.mcp.AddTool(
		mcp.NewTool("observe",
			mcp.WithDescription("Read the Android UI element tree. Returns interactive elements with indices, text, centers, and bounds."),
			mcp.WithBoolean("all", mcp.Description("Show every element, bypassing filters")),
			mcp.WithBoolean("full", mcp.Description("Use the full tree variant with state flags")),
			mcp.WithBoolean("phone-state", mcp.Description("Return current app, activity, and keyboard state instead")),
		),
		s.handleObserve,
	)

	// tap
	s.mcp.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap a UI element by text or index, or tap absolute screen coordinates"),
			mcp.WithString("text", mcp.Description("Find and tap element by text")),
			mcp.WithNumber("index", mcp.Description("Tap element by index (from observe)")),
			mcp.WithNumber("x", mcp.Description("Tap at X coordinate")),
			mcp.WithNumber("y", mcp.Description("Tap at Y coordinate")),
			mcp.WithBoolean("exact", mcp.Description("Require exact text match")),
			mcp.WithBoolean("avoid-overlap", mcp.Description("Aim for a point not covered by overlapping elements (default: true)")),
		),
		s.handleTap,
	)

	// longpress
	s.mcp.AddTool(
		mcp.NewTool("longpress",
			mcp.WithDescription("Long-press a UI element by text or index, or absolute coordinates"),
			mcp.WithString("text", mcp.Description("Find element by text")),
			mcp.WithNumber("index", mcp.Description("Target element by index")),
			mcp.WithNumber("x", mcp.Description("X coordinate")),
			mcp.WithNumber("y", mcp.Description("Y coordinate")),
			mcp.WithBoolean("exact", mcp.Description("Require exact text match")),
			mcp.WithNumber("duration", mcp.Description("Press duration in ms (default: 1500)")),
		),
		s.handleLongpress,
	)

	// type
	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text into the focused input via the portal keyboard"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithBoolean("clear", mcp.Description("Clear the field before typing")),
		),
		s.handleType,
	)

	// wait
	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for an element with the given text to appear (or disappear)"),
			mcp.WithString("text", mcp.Description("Element text to wait for"), mcp.Required()),
			mcp.WithBoolean("exact", mcp.Description("Require exact text match")),
			mcp.WithBoolean("gone", mcp.Description("Wait until the element is NO LONGER present")),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default: 10)")),
			mcp.WithNumber("interval", mcp.Description("Polling interval in ms (default: 1000)")),
		),
		s.handleWait,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture a screenshot of the device screen"),
			mcp.WithString("format", mcp.Description("Image format: png, jpg (default: png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 80)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default: 0.5)")),
		),
		s.handleScreenshot,
	)
}

// resultToText serializes a result to YAML for MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}

func (s *mcpServer) handleObserve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	all := boolParam(params, "all", false)
	full := boolParam(params, "full", false)
	phoneState := boolParam(params, "phone-state", false)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	if phoneState {
		state, err := s.portal.PhoneState(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(resultToText(state)), nil
	}

	_, flat, err := s.cache.snapshot(ctx, s.adb, full, all)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	for _, n := range flat {
		sb.WriteString(model.FormatLine(n, full))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *mcpServer) handleTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	index := intParam(params, "index", 0)
	x := intParam(params, "x", -1)
	y := intParam(params, "y", -1)
	exact := boolParam(params, "exact", false)
	avoidOverlap := boolParam(params, "avoid-overlap", true)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	result := ActionResult{Action: "tap"}
	if x >= 0 && y >= 0 {
		result.X, result.Y = x, y
	} else {
		tree, _, err := s.cache.snapshot(ctx, s.adb, false, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target, err := resolveTarget(tree, text, exact, index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		px, py, err := targetPoint(target, tree, avoidOverlap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result.X, result.Y = px, py
		result.Element = target.Label()
		result.Index = target.Index
	}

	if err := s.adb.Tap(ctx, result.X, result.Y); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result.OK = true
	s.cache.invalidateAll()
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleLongpress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	index := intParam(params, "index", 0)
	x := intParam(params, "x", -1)
	y := intParam(params, "y", -1)
	exact := boolParam(params, "exact", false)
	durationMs := intParam(params, "duration", 1500)
	duration := time.Duration(durationMs) * time.Millisecond

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	result := ActionResult{Action: "longpress", Duration: duration.String()}
	if x >= 0 && y >= 0 {
		result.X, result.Y = x, y
	} else {
		tree, _, err := s.cache.snapshot(ctx, s.adb, false, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target, err := resolveTarget(tree, text, exact, index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		px, py, err := targetPoint(target, tree, true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result.X, result.Y = px, py
		result.Element = target.Label()
		result.Index = target.Index
	}

	if err := s.adb.LongPress(ctx, result.X, result.Y, duration); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result.OK = true
	s.cache.invalidateAll()
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	clear := boolParam(params, "clear", false)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	if err := s.portal.TypeText(ctx, text, clear); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.invalidateAll()
	return mcp.NewToolResultText(resultToText(ActionResult{OK: true, Action: "type"})), nil
}

func (s *mcpServer) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	exact := boolParam(params, "exact", false)
	gone := boolParam(params, "gone", false)
	timeoutSec := intParam(params, "timeout", 10)
	intervalMs := intParam(params, "interval", 1000)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	timeout := time.Duration(timeoutSec) * time.Second
	interval := time.Duration(intervalMs) * time.Millisecond
	deadline := time.Now().Add(timeout)
	start := time.Now()

	for {
		tree, err := s.portal.QueryTree(ctx, false)
		if err == nil {
			found := model.FindByText(tree, text, exact)
			conditionMet := found != nil
			if gone {
				conditionMet = found == nil
			}
			if conditionMet {
				result := WaitResult{
					OK:      true,
					Action:  "wait",
					Elapsed: fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
					Match:   text,
				}
				if found != nil {
					result.Index = found.Index
				}
				s.cache.invalidateAll()
				return mcp.NewToolResultText(resultToText(result)), nil
			}
		}

		if time.Now().After(deadline) {
			result := WaitResult{
				OK:       false,
				Action:   "wait",
				Elapsed:  fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Match:    text,
				TimedOut: true,
			}
			return mcp.NewToolResultError(resultToText(result)), nil
		}

		select {
		case <-ctx.Done():
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		case <-time.After(interval):
		}
	}
}

func (s *mcpServer) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format := stringParam(params, "format", "png")
	quality := intParam(params, "quality", 80)
	scale := floatParam(params, "scale", 0.5)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	data, err := captureScreen(ctx, s.adb, format, quality, scale)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b64 := base64.StdEncoding.EncodeToString(data)
	mimeType := "image/png"
	if format == "jpg" || format == "jpeg" {
		mimeType = "image/jpeg"
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     b64,
				MIMEType: mimeType,
			},
		},
	}, nil
}
