package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/fitcoach/internal/coach/records"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests: parses input, calls the service, formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// FitnessContextInput is the input for get_fitness_context.
type FitnessContextInput struct {
	UserID   string `json:"user_id" jsonschema:"Id of the user whose context is returned"`
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA timezone of the user (e.g. Europe/Berlin)"`
}

func (h *Handler) GetFitnessContextTool() func(context.Context, *mcp.CallToolRequest, FitnessContextInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in FitnessContextInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		return textResult(h.service.GetFitnessContext(ctx, in.UserID, in.Timezone)), nil, nil
	}
}

// InterpretMessageInput is the input for interpret_message.
type InterpretMessageInput struct {
	Message  string `json:"message" jsonschema:"The chat message to interpret"`
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA timezone used to resolve dates (e.g. Europe/Berlin)"`
}

func (h *Handler) InterpretMessageTool() func(context.Context, *mcp.CallToolRequest, InterpretMessageInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in InterpretMessageInput) (*mcp.CallToolResult, any, error) {
		interpretation, err := h.service.InterpretMessage(ctx, in.Message, in.Timezone)
		if err != nil {
			return errorResult("Error interpreting message: " + err.Error()), nil, nil
		}
		return jsonResult(interpretation), nil, nil
	}
}

// PlannedItemsInput is the input for get_planned_items.
type PlannedItemsInput struct {
	UserID   string `json:"user_id" jsonschema:"Id of the user"`
	FromDate string `json:"from_date" jsonschema:"First day to include (YYYY-MM-DD)"`
}

func (h *Handler) GetPlannedItemsTool() func(context.Context, *mcp.CallToolRequest, PlannedItemsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PlannedItemsInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		if _, err := time.Parse(records.DateLayout, in.FromDate); err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		items, err := h.service.ListPlannedItems(ctx, in.UserID, in.FromDate)
		if err != nil {
			return errorResult("Error listing planned items: " + err.Error()), nil, nil
		}
		return jsonResult(items), nil, nil
	}
}

func (h *Handler) GetStoreSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}
