package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/interpreter"
	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/writer"
	"github.com/2beens/fitcoach/internal/events"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrMissingMessage       = errors.New("message is required")
	ErrMissingUserID        = errors.New("user id is required")
	ErrTextGenNotConfigured = errors.New("text generation is not configured")
)

// IsValidationError reports whether err was caused by bad input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingMessage) || errors.Is(err, ErrMissingUserID)
}

type recordWriter interface {
	WriteWorkoutCreation(ctx context.Context, userID string, rec records.WorkoutCreation) writer.WorkoutCreationOutcome
	WriteWorkoutLog(ctx context.Context, userID string, rec records.WorkoutLog) writer.Outcome
	WriteMeal(ctx context.Context, userID string, rec records.Meal) writer.Outcome
	WritePlannerItem(ctx context.Context, userID string, rec records.PlannerItem) writer.Outcome
}

type contextBuilder interface {
	Build(ctx context.Context, userID string, now time.Time) string
}

type locationResolver interface {
	Location(ctx context.Context, explicitTZ, clientIP string) *time.Location
}

type Request struct {
	Message  string
	UserID   string
	Timezone string
	ClientIP string
}

type Reply struct {
	Response    string
	LoggedItems []string
	Intent      records.Intent
}

type ServiceParams struct {
	Writer           recordWriter
	ContextBuilder   contextBuilder
	TextGenerator    textGenerator
	Publisher        eventPublisher
	LocationResolver locationResolver
	MetricsManager   *metrics.Manager
	Clock            func() time.Time
}

// Service runs one message through classification, record writing,
// context building and reply generation.
type Service struct {
	writer         recordWriter
	contextBuilder contextBuilder
	textGenerator  textGenerator
	publisher      eventPublisher
	locations      locationResolver
	metricsManager *metrics.Manager
	clock          func() time.Time
}

func NewService(params ServiceParams) *Service {
	s := &Service{
		writer:         params.Writer,
		contextBuilder: params.ContextBuilder,
		textGenerator:  params.TextGenerator,
		publisher:      params.Publisher,
		locations:      params.LocationResolver,
		metricsManager: params.MetricsManager,
		clock:          params.Clock,
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	if s.locations == nil {
		s.locations = utcLocation{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

func (s *Service) HandleMessage(ctx context.Context, req Request) (_ *Reply, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.handle_message")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.validate(req); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", req.UserID))

	now := s.localNow(ctx, req.Timezone, req.ClientIP)
	in := interpreter.Interpret(req.Message, now)
	span.SetAttributes(attribute.String("coach.intent", in.Intent.String()))
	if s.metricsManager != nil {
		s.metricsManager.CounterCoachMessages.WithLabelValues(in.Intent.String()).Inc()
	}

	loggedItems := s.writeRecords(ctx, req.UserID, in, now)

	userContext := s.contextBuilder.Build(ctx, req.UserID, now)
	systemPrompt := ComposeSystemPrompt(userContext, now)

	response, err := s.textGenerator.Generate(ctx, systemPrompt, withConfirmationNote(req.Message, loggedItems))
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	return &Reply{
		Response:    response,
		LoggedItems: loggedItems,
		Intent:      in.Intent,
	}, nil
}

// Interpret classifies and extracts without writing anything.
func (s *Service) Interpret(ctx context.Context, message, timezone, clientIP string) (interpreter.Interpretation, error) {
	if strings.TrimSpace(message) == "" {
		return interpreter.Interpretation{}, ErrMissingMessage
	}
	now := s.localNow(ctx, timezone, clientIP)
	return interpreter.Interpret(message, now), nil
}

func (s *Service) Context(ctx context.Context, userID, timezone, clientIP string) string {
	return s.contextBuilder.Build(ctx, userID, s.localNow(ctx, timezone, clientIP))
}

func (s *Service) validate(req Request) error {
	if strings.TrimSpace(req.Message) == "" {
		return ErrMissingMessage
	}
	if strings.TrimSpace(req.UserID) == "" {
		return ErrMissingUserID
	}
	if s.textGenerator == nil || !s.textGenerator.Configured() {
		return ErrTextGenNotConfigured
	}
	return nil
}

func (s *Service) localNow(ctx context.Context, timezone, clientIP string) time.Time {
	return s.clock().In(s.locations.Location(ctx, timezone, clientIP))
}

// writeRecords writes whatever the interpretation holds and returns one
// confirmation line per top level record that got committed.
func (s *Service) writeRecords(ctx context.Context, userID string, in interpreter.Interpretation, now time.Time) []string {
	loggedItems := []string{}

	if wc := in.WorkoutCreation; wc != nil {
		outcome := s.writer.WriteWorkoutCreation(ctx, userID, *wc)
		// the summary counts exercises attempted, not exercises written
		summary := fmt.Sprintf("💪 Created workout: %s with %d exercises", wc.Name, len(wc.Exercises))
		loggedItems = s.confirm(ctx, userID, outcome.Outcome, summary, now, loggedItems)
	}
	if wl := in.WorkoutLog; wl != nil {
		outcome := s.writer.WriteWorkoutLog(ctx, userID, *wl)
		summary := fmt.Sprintf("🏋️ Logged workout: %s (%d min)", wl.Name, wl.DurationMinutes)
		loggedItems = s.confirm(ctx, userID, outcome, summary, now, loggedItems)
	}
	if meal := in.Meal; meal != nil {
		outcome := s.writer.WriteMeal(ctx, userID, *meal)
		summary := fmt.Sprintf("🍽️ Logged %s: %s (~%d kcal)", meal.MealType, meal.Name, meal.Calories)
		loggedItems = s.confirm(ctx, userID, outcome, summary, now, loggedItems)
	}
	for _, item := range in.PlannerItems {
		outcome := s.writer.WritePlannerItem(ctx, userID, item)
		summary := fmt.Sprintf("📅 Scheduled: %s on %s at %s", item.Title, item.Date, item.Time)
		loggedItems = s.confirm(ctx, userID, outcome, summary, now, loggedItems)
	}

	return loggedItems
}

func (s *Service) confirm(
	ctx context.Context,
	userID string,
	outcome writer.Outcome,
	summary string,
	now time.Time,
	loggedItems []string,
) []string {
	kind := string(outcome.Kind)
	if !outcome.Written() {
		if s.metricsManager != nil {
			s.metricsManager.CounterWriteFailures.WithLabelValues(kind).Inc()
		}
		return loggedItems
	}
	if outcome.Status == writer.PartiallySucceeded && s.metricsManager != nil {
		s.metricsManager.CounterWriteFailures.WithLabelValues(kind).Inc()
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterLoggedItems.WithLabelValues(kind).Inc()
	}

	event := events.NewLoggedItem(userID, kind, outcome.RecordID, summary, now)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Errorf("publish logged item %s for user %s: %s", event.ID, userID, err)
		if s.metricsManager != nil {
			s.metricsManager.CounterEventPublishFailure.Inc()
		}
	}

	return append(loggedItems, summary)
}

type utcLocation struct{}

func (utcLocation) Location(context.Context, string, string) *time.Location {
	return time.UTC
}
