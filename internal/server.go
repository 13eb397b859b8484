package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/coach"
	"github.com/2beens/fitcoach/internal/coach/fitctx"
	coachmcp "github.com/2beens/fitcoach/internal/coach/mcp"
	"github.com/2beens/fitcoach/internal/coach/writer"
	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/events"
	"github.com/2beens/fitcoach/internal/geotz"
	"github.com/2beens/fitcoach/internal/llm"
	"github.com/2beens/fitcoach/internal/middleware"
	"github.com/2beens/fitcoach/internal/store"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"
)

// coachStore is satisfied by both the postgres repo and the in-memory store.
type coachStore interface {
	AddWorkout(ctx context.Context, workout store.Workout) (*store.Workout, error)
	AddExercise(ctx context.Context, exercise store.Exercise) (*store.Exercise, error)
	AddExerciseSets(ctx context.Context, sets []store.ExerciseSet) (int64, error)
	AddFoodEntry(ctx context.Context, entry store.FoodEntry) (*store.FoodEntry, error)
	AddPlannedItem(ctx context.Context, item store.PlannedItem) (*store.PlannedItem, error)
	GetProfile(ctx context.Context, userID string) (*store.Profile, error)
	GetGoals(ctx context.Context, userID string) (*store.Goals, error)
	ListWorkoutsSince(ctx context.Context, userID, since string, limit int) ([]store.Workout, error)
	ListFoodEntriesSince(ctx context.Context, userID, since string) ([]store.FoodEntry, error)
	ListPlannedItems(ctx context.Context, userID, from string) ([]store.PlannedItem, error)
	LatestProgress(ctx context.Context, userID string) (*store.ProgressEntry, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, item events.LoggedItem) error
	Close() error
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool // nil when running on the in-memory store
	redisClient  *redis.Client // nil when redis is not configured
	rateLimiter  middleware.RequestRateLimiter
	publisher    eventPublisher
	coachService *coach.Service
	mcpServer    *mcp.Server
	authConfig   auth.Config

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	OpenAIAPIKey            string
	JWTSecret               string
	PostgresPassword        string
	RedisPassword           string
	IpInfoAPIKey            string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitcoach-service")
	if err != nil {
		return nil, err
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitcoach", "service", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		authConfig: auth.Config{
			Secret: params.JWTSecret,
			Issuer: cfg.JWTIssuer,
		},
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	var recordStore coachStore
	var schemaRepo coachmcp.SchemaRepo
	if cfg.PostgresHost != "" {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDB,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		repo := store.NewRepo(dbPool)
		if err := repo.ApplySchema(ctx); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
		if err := metrics.RegisterDBPool(promRegistry, dbPool, cfg.PostgresDB); err != nil {
			log.Errorf("register db pool metrics: %s", err)
		}

		s.dbPool = dbPool
		recordStore = repo
		schemaRepo = coachmcp.NewPoolSchemaRepo(dbPool)
	} else {
		log.Warnln("postgres host not set, records are kept in memory only")
		recordStore = store.NewMemory()
	}

	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.HoneycombTracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		s.redisClient = rdb
		s.rateLimiter = redis_rate.NewLimiter(rdb)
	} else {
		log.Warnln("redis host not set, rate limiting disabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		s.publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		s.publisher = events.NoopPublisher{}
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	defaultLocation, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("load default timezone: %w", err)
	}
	tzResolver := geotz.NewResolver(nil, defaultLocation)
	if params.IpInfoAPIKey != "" {
		tzResolver = geotz.NewResolver(geotz.NewIPInfoLookup(tracedHttpClient, params.IpInfoAPIKey), defaultLocation)
	}

	textGenerator := llm.NewClient(llm.ClientParams{
		BaseURL:        cfg.LLMBaseURL,
		APIKey:         params.OpenAIAPIKey,
		Model:          cfg.LLMModel,
		Temperature:    cfg.LLMTemperature,
		MaxTokens:      cfg.LLMMaxTokens,
		Timeout:        cfg.LLMTimeout(),
		MetricsManager: metricsManager,
	})
	if !textGenerator.Configured() {
		log.Warnln("text generation api key not set, coach messages will be rejected")
	}

	s.coachService = coach.NewService(coach.ServiceParams{
		Writer:           writer.New(recordStore),
		ContextBuilder:   fitctx.NewBuilder(recordStore),
		TextGenerator:    textGenerator,
		Publisher:        s.publisher,
		LocationResolver: tzResolver,
		MetricsManager:   metricsManager,
	})
	s.mcpServer = coachmcp.NewServer(coachmcp.NewContextService(s.coachService, recordStore, schemaRepo))

	return s, nil
}

func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("coach-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	coachHandler := coach.NewHandler(s.coachService)
	coachRouter := r.PathPrefix("/coach").Subrouter()
	if s.rateLimiter != nil {
		coachRouter.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, "coach", s.config.RateLimitPerMin))
	}
	coachRouter.HandleFunc("/message", coachHandler.HandleMessage).Methods("POST", "OPTIONS").Name("coach-message")
	coachRouter.HandleFunc("/interpret", coachHandler.HandleInterpret).Methods("POST", "OPTIONS").Name("coach-interpret")
	coachRouter.HandleFunc("/context/{userId}", coachHandler.HandleContext).Methods("GET", "OPTIONS").Name("coach-context")

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	r.Handle("/mcp", mcpHandler).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authConfig)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes))

	return cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Mcp-Session-Id"},
		AllowCredentials: true,
	}).Handler(r)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Store   string `json:"store"`
	Redis   string `json:"redis"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health")
	defer span.End()

	resp := healthResponse{
		Status:  "ok",
		Version: s.versionInfo,
		Store:   "memory",
		Redis:   "disabled",
	}

	if s.dbPool != nil {
		resp.Store = "ok"
		if err := s.dbPool.Ping(ctx); err != nil {
			log.Errorf("health: ping db: %s", err)
			resp.Store = "unavailable"
			resp.Status = "degraded"
		}
	}

	if s.redisClient != nil {
		resp.Redis = "ok"
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			log.Errorf("health: ping redis: %s", err)
			resp.Redis = "unavailable"
			resp.Status = "degraded"
		}
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metrics.Handler(s.promRegistry))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Errorf("failed to close events publisher: %s", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
