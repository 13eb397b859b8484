package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/fitcoach/internal/coach/interpreter"
	"github.com/2beens/fitcoach/internal/store"
)

var ErrNoSchemaSource = errors.New("no schema source, coach is running on the in-memory store")

type coachService interface {
	Interpret(ctx context.Context, message, timezone, clientIP string) (interpreter.Interpretation, error)
	Context(ctx context.Context, userID, timezone, clientIP string) string
}

type plannedItemsLister interface {
	ListPlannedItems(ctx context.Context, userID, from string) ([]store.PlannedItem, error)
}

// contextService is what the tool handlers call.
type contextService interface {
	GetFitnessContext(ctx context.Context, userID, timezone string) string
	InterpretMessage(ctx context.Context, message, timezone string) (interpreter.Interpretation, error)
	ListPlannedItems(ctx context.Context, userID, fromDate string) ([]store.PlannedItem, error)
	GetSchema(ctx context.Context) (string, error)
}

// ContextService exposes the coach to MCP clients. It never writes records.
type ContextService struct {
	coach   coachService
	planner plannedItemsLister
	schema  SchemaRepo
}

// NewContextService builds a ContextService. schemaRepo may be nil when no database is used.
func NewContextService(coach coachService, planner plannedItemsLister, schemaRepo SchemaRepo) *ContextService {
	return &ContextService{
		coach:   coach,
		planner: planner,
		schema:  schemaRepo,
	}
}

func (s *ContextService) GetFitnessContext(ctx context.Context, userID, timezone string) string {
	return s.coach.Context(ctx, userID, timezone, "")
}

// InterpretMessage is a dry run of the message pipeline: nothing is stored.
func (s *ContextService) InterpretMessage(ctx context.Context, message, timezone string) (interpreter.Interpretation, error) {
	return s.coach.Interpret(ctx, message, timezone, "")
}

func (s *ContextService) ListPlannedItems(ctx context.Context, userID, fromDate string) ([]store.PlannedItem, error) {
	items, err := s.planner.ListPlannedItems(ctx, userID, fromDate)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []store.PlannedItem{}
	}
	return items, nil
}

// GetSchema returns the coach tables with their columns as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	if s.schema == nil {
		return "", ErrNoSchemaSource
	}
	cols, err := s.schema.GetCoachColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatCoachSchema(cols), nil
}

func formatCoachSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Coach DB Schema\n\nNo coach tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Coach DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(coachTables, ", "))
	b.WriteString(" (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}
