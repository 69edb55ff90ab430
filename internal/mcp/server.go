// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the work item engine as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/internal/render"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Server wraps the workgraph services and exposes them as MCP tools.
type Server struct {
	server    *gomcp.Server
	items     core.ItemManager
	scheduler *core.Scheduler
	renderer  *render.Renderer
}

// NewServer creates a new MCP server with the given service dependencies.
func NewServer(items core.ItemManager, scheduler *core.Scheduler, renderer *render.Renderer, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		items:     items,
		scheduler: scheduler,
		renderer:  renderer,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "wg", Version: version},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type getItemInput struct {
	ID string `json:"id" jsonschema:"required,the unique work item id (e.g. feature_oauth)"`
}

type itemOutput struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	Milestone    string   `json:"milestone,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Urgent       bool     `json:"urgent,omitempty"`
	SpecRef      string   `json:"spec_ref,omitempty"`
	Created      string   `json:"created"`
	Updated      string   `json:"updated"`
}

type listItemsInput struct {
	Status      string `json:"status,omitempty" jsonschema:"filter by status (not_started, in_progress, completed)"`
	Type        string `json:"type,omitempty" jsonschema:"filter by item type"`
	Milestone   string `json:"milestone,omitempty" jsonschema:"filter by milestone id"`
	BlockedOnly bool   `json:"blocked_only,omitempty" jsonschema:"only items blocked by incomplete dependencies"`
}

type listItemsOutput struct {
	Items []itemOutput `json:"items"`
	Count int          `json:"count"`
}

type updateStatusInput struct {
	ID     string `json:"id" jsonschema:"required,the unique work item id"`
	Status string `json:"status" jsonschema:"required,the new status (not_started, in_progress, completed)"`
}

type updateStatusOutput struct {
	Message string `json:"message"`
}

type nextItemsInput struct {
	Count int `json:"count,omitempty" jsonschema:"maximum number of recommendations (default 1)"`
}

type blockedOutput struct {
	ID           string   `json:"id"`
	Priority     string   `json:"priority"`
	BlockingDeps []string `json:"blocking_deps"`
}

type nextItemsOutput struct {
	Items          []itemOutput    `json:"items"`
	UrgentOverride bool            `json:"urgent_override"`
	BlockedPreview []blockedOutput `json:"blocked_preview,omitempty"`
}

type renderGraphInput struct {
	Milestone        string `json:"milestone,omitempty" jsonschema:"filter by milestone id"`
	IncludeCompleted bool   `json:"include_completed,omitempty" jsonschema:"include completed items"`
}

type renderGraphOutput struct {
	DOT     string `json:"dot,omitempty"`
	Message string `json:"message,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_item",
		Description: "Get work item details by id, including status, priority, dependencies, and urgent flag.",
	}, s.handleGetItem)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_items",
		Description: "List work items with optional status, type, milestone, and blocked-only filters.",
	}, s.handleListItems)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_status",
		Description: "Update a work item's lifecycle status. Valid statuses: not_started, in_progress, completed.",
	}, s.handleUpdateStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "next_items",
		Description: "Recommend what to work on next: an urgent item if one exists, otherwise ready items by priority, plus a blocked-work preview.",
	}, s.handleNextItems)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "render_graph",
		Description: "Render the dependency graph as DOT text with critical-path and bottleneck highlighting.",
	}, s.handleRenderGraph)
}

// --- Tool handlers ---

func (s *Server) handleGetItem(_ context.Context, _ *gomcp.CallToolRequest, input getItemInput) (*gomcp.CallToolResult, itemOutput, error) {
	if input.ID == "" {
		return errorResult("id is required"), itemOutput{}, nil
	}

	item, err := s.items.Get(input.ID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting item %s: %s", input.ID, err)), itemOutput{}, nil
	}
	return nil, itemToOutput(item), nil
}

func (s *Server) handleListItems(_ context.Context, _ *gomcp.CallToolRequest, input listItemsInput) (*gomcp.CallToolResult, listItemsOutput, error) {
	filter := core.ItemFilter{
		Milestone:   input.Milestone,
		BlockedOnly: input.BlockedOnly,
	}
	if input.Status != "" {
		status := models.ItemStatus(input.Status)
		if !status.IsValid() {
			return errorResult(fmt.Sprintf("invalid status %q", input.Status)), listItemsOutput{}, nil
		}
		filter.Status = []models.ItemStatus{status}
	}
	if input.Type != "" {
		itemType := models.ItemType(input.Type)
		if !itemType.IsValid() {
			return errorResult(fmt.Sprintf("invalid type %q", input.Type)), listItemsOutput{}, nil
		}
		filter.Types = []models.ItemType{itemType}
	}

	items, err := s.items.List(filter, core.SortByPriority)
	if err != nil {
		return errorResult(fmt.Sprintf("listing items: %s", err)), listItemsOutput{}, nil
	}

	out := listItemsOutput{Items: make([]itemOutput, len(items)), Count: len(items)}
	for i, item := range items {
		out.Items[i] = itemToOutput(item)
	}
	return nil, out, nil
}

func (s *Server) handleUpdateStatus(_ context.Context, _ *gomcp.CallToolRequest, input updateStatusInput) (*gomcp.CallToolResult, updateStatusOutput, error) {
	if input.ID == "" {
		return errorResult("id is required"), updateStatusOutput{}, nil
	}
	status := models.ItemStatus(input.Status)
	if !status.IsValid() {
		return errorResult(fmt.Sprintf("invalid status %q: must be one of not_started, in_progress, completed", input.Status)), updateStatusOutput{}, nil
	}

	if _, err := s.items.Update(input.ID, core.UpdatePatch{Status: &status}); err != nil {
		return errorResult(fmt.Sprintf("updating item %s status: %s", input.ID, err)), updateStatusOutput{}, nil
	}

	return nil, updateStatusOutput{
		Message: fmt.Sprintf("item %s status updated to %s", input.ID, input.Status),
	}, nil
}

func (s *Server) handleNextItems(_ context.Context, _ *gomcp.CallToolRequest, input nextItemsInput) (*gomcp.CallToolResult, nextItemsOutput, error) {
	count := input.Count
	if count <= 0 {
		count = 1
	}

	snap, err := s.items.Snapshot()
	if err != nil {
		return errorResult(fmt.Sprintf("loading snapshot: %s", err)), nextItemsOutput{}, nil
	}

	rec := s.scheduler.Next(snap, count)
	out := nextItemsOutput{
		Items:          make([]itemOutput, len(rec.Items)),
		UrgentOverride: rec.UrgentOverride,
	}
	for i, item := range rec.Items {
		out.Items[i] = itemToOutput(item)
	}
	for _, blocked := range rec.BlockedPreview {
		out.BlockedPreview = append(out.BlockedPreview, blockedOutput{
			ID:           blocked.Item.ID,
			Priority:     string(blocked.Item.Priority),
			BlockingDeps: blocked.BlockingDeps,
		})
	}
	return nil, out, nil
}

func (s *Server) handleRenderGraph(ctx context.Context, _ *gomcp.CallToolRequest, input renderGraphInput) (*gomcp.CallToolResult, renderGraphOutput, error) {
	snap, err := s.items.Snapshot()
	if err != nil {
		return errorResult(fmt.Sprintf("loading snapshot: %s", err)), renderGraphOutput{}, nil
	}

	result, err := s.renderer.Render(ctx, snap, render.FormatDOT, render.Filters{
		Milestone:        input.Milestone,
		IncludeCompleted: input.IncludeCompleted,
	}, "")
	if err != nil {
		return errorResult(fmt.Sprintf("rendering graph: %s", err)), renderGraphOutput{}, nil
	}

	return nil, renderGraphOutput{DOT: result.Text, Message: result.Message}, nil
}

// --- Helpers ---

func itemToOutput(item *models.WorkItem) itemOutput {
	return itemOutput{
		ID:           item.ID,
		Type:         string(item.Type),
		Title:        item.Title,
		Status:       string(item.Status),
		Priority:     string(item.Priority),
		Milestone:    item.Milestone,
		Dependencies: item.Dependencies,
		Urgent:       item.Urgent,
		SpecRef:      item.SpecRef,
		Created:      item.Created.Format(time.RFC3339),
		Updated:      item.Updated.Format(time.RFC3339),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
