// Package main runs the coach MCP server over stdio (for local editor/agent use).
// The same tools are mounted on the main service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/2beens/fitcoach/internal/coach"
	"github.com/2beens/fitcoach/internal/coach/fitctx"
	coachmcp "github.com/2beens/fitcoach/internal/coach/mcp"
	"github.com/2beens/fitcoach/internal/coach/writer"
	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/geotz"
	"github.com/2beens/fitcoach/internal/store"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.PostgresHost == "" {
		log.Fatalf("postgres_host must be set for the mcp server")
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDB,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("COACH_POSTGRES_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	defaultLocation, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		log.Fatalf("default timezone: %v", err)
	}

	repo := store.NewRepo(dbPool)
	// interpret and context only, no text generation here
	coachService := coach.NewService(coach.ServiceParams{
		Writer:           writer.New(repo),
		ContextBuilder:   fitctx.NewBuilder(repo),
		LocationResolver: geotz.NewResolver(nil, defaultLocation),
	})
	server := coachmcp.NewServer(coachmcp.NewContextService(coachService, repo, coachmcp.NewPoolSchemaRepo(dbPool)))

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
