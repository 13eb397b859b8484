package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the coach tools. It is served over stdio
// by cmd/coach_mcp and mounted at /mcp on the main service.
func NewServer(svc *ContextService) *mcp.Server {
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitcoach",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fitness_context",
		Description: "Returns the text digest the coach conditions its replies on: profile, goals, workouts of the last 7 days, meals of the last 3 days and the latest progress entry. Arg: user_id; optional: timezone.",
	}, h.GetFitnessContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "interpret_message",
		Description: "Classifies a chat message (workout creation, workout logging, meal logging, planner request or none) and returns the records it would produce, without storing anything. Arg: message; optional: timezone.",
	}, h.InterpretMessageTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_planned_items",
		Description: "Returns the user's planner items from the given day on, ordered by date and time. Args: user_id, from_date (YYYY-MM-DD).",
	}, h.GetPlannedItemsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_store_schema",
		Description: "Returns the DB schema of the coach tables: table names, columns, types, nullable, default.",
	}, h.GetStoreSchemaTool())

	return s
}
