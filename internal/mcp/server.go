// Package mcp provides the stdio MCP server exposing directory context tools
// for coding agents.
package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/dirctx/internal/buildinfo"
	"github.com/go-ports/dirctx/internal/operation"
	"github.com/go-ports/dirctx/internal/service"
)

const getDescription = `Read directory-scoped context values. Values set on a directory apply to it and every directory below it; a value set closer to the directory shadows one set higher up. Without a key, returns every visible key-value pair. With a key, returns its resolved value or null.` //nolint:lll

const setDescription = `Set a context value on a directory. The value becomes visible from that directory and all of its descendants unless they override it.` //nolint:lll

const removeDescription = `Remove a context value from a directory. Only the value set on that exact directory is removed; a value inherited from a parent directory stays visible.` //nolint:lll

const configPathDescription = `Return the path of the file backing the context store.`

// NewServer creates and registers all context tools on a new MCP server.
// workingDir is used for calls that do not pass a directory.
func NewServer(svc *service.Service, workingDir string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("context", buildinfo.Version)
	registerTools(s, &handlers{svc: svc, workingDir: workingDir})
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, svc *service.Service, workingDir string) error {
	return mcpserver.ServeStdio(NewServer(svc, workingDir))
}

// handlers share one service. Each call loads, applies and saves on its own,
// so calls are serialized to keep one call's save from dropping another's edit.
type handlers struct {
	svc        *service.Service
	workingDir string
	mu         sync.Mutex
}

func registerTools(s *mcpserver.MCPServer, h *handlers) {
	directory := mcp.WithString("directory",
		mcp.Description("Absolute directory to resolve from. Defaults to the server's working directory."),
	)

	s.AddTool(mcp.NewTool("context_get",
		mcp.WithDescription(getDescription),
		mcp.WithString("key",
			mcp.Description("Key to resolve. Omit to list every visible key."),
		),
		directory,
	), h.handleGet)

	s.AddTool(mcp.NewTool("context_set",
		mcp.WithDescription(setDescription),
		mcp.WithString("key", mcp.Description("Key to set."), mcp.Required()),
		mcp.WithString("value", mcp.Description("Value to store."), mcp.Required()),
		directory,
	), h.handleSet)

	s.AddTool(mcp.NewTool("context_remove",
		mcp.WithDescription(removeDescription),
		mcp.WithString("key", mcp.Description("Key to remove."), mcp.Required()),
		directory,
	), h.handleRemove)

	s.AddTool(mcp.NewTool("context_config_path",
		mcp.WithDescription(configPathDescription),
	), h.handleConfigPath)
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func (h *handlers) handleGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op := operation.Operation{Kind: operation.PrintAll}
	if key := req.GetString("key", ""); key != "" {
		op = operation.Operation{Kind: operation.PrintOne, Key: key}
	}
	return h.apply(op, req)
}

func (h *handlers) handleSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.apply(operation.Operation{Kind: operation.Add, Key: key, Value: value}, req)
}

func (h *handlers) handleRemove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.apply(operation.Operation{Kind: operation.Remove, Key: key}, req)
}

func (h *handlers) handleConfigPath(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(operation.Operation{Kind: operation.ShowConfigPath}, req)
}

func (h *handlers) apply(op operation.Operation, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("directory", "")
	if dir == "" {
		dir = h.workingDir
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.svc.Apply(op, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(payload(res))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// payload shapes a result for the tool response.
func payload(res *service.Result) map[string]any {
	switch res.Op.Kind {
	case operation.PrintAll:
		values := res.Values
		if values == nil {
			values = make(map[string]string)
		}
		return map[string]any{"directory": res.WorkingDir, "values": values}
	case operation.PrintOne:
		return map[string]any{"directory": res.WorkingDir, "key": res.Op.Key, "value": res.Output()}
	case operation.Add:
		return map[string]any{"directory": res.WorkingDir, "key": res.Op.Key, "value": res.Op.Value, "saved": true}
	case operation.Remove:
		return map[string]any{"directory": res.WorkingDir, "key": res.Op.Key, "saved": true}
	}
	return map[string]any{"config_path": res.ConfigPath}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
