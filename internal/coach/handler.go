package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/coach/interpreter"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type coachService interface {
	HandleMessage(ctx context.Context, req Request) (*Reply, error)
	Interpret(ctx context.Context, message, timezone, clientIP string) (interpreter.Interpretation, error)
	Context(ctx context.Context, userID, timezone, clientIP string) string
}

type MessageRequest struct {
	Message  string `json:"message"`
	UserID   string `json:"userId"`
	Timezone string `json:"timezone,omitempty"`
}

type MessageResponse struct {
	Response    string   `json:"response"`
	LoggedItems []string `json:"loggedItems"`
	Success     bool     `json:"success"`
}

type FailureResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

type Handler struct {
	service coachService
}

func NewHandler(service coachService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.message")
	defer span.End()

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("coach message, unmarshal json body: %s", err)
		writeFailure(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// an empty user id is a validation failure reported by the service
	if strings.TrimSpace(req.UserID) != "" && !subjectAllowed(ctx, req.UserID) {
		writeFailure(w, "user mismatch", http.StatusForbidden)
		return
	}

	reply, err := handler.service.HandleMessage(ctx, Request{
		Message:  req.Message,
		UserID:   req.UserID,
		Timezone: req.Timezone,
		ClientIP: clientIP(r),
	})
	if err != nil {
		switch {
		case IsValidationError(err):
			writeFailure(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrTextGenNotConfigured):
			log.Errorf("coach message for user %s: %s", req.UserID, err)
			writeFailure(w, err.Error(), http.StatusServiceUnavailable)
		default:
			log.Errorf("coach message for user %s: %s", req.UserID, err)
			writeFailure(w, "failed to process message", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("coach message handled for user %s: intent [%s], %d logged items", req.UserID, reply.Intent, len(reply.LoggedItems))

	pkg.WriteJSON(w, MessageResponse{
		Response:    reply.Response,
		LoggedItems: reply.LoggedItems,
		Success:     true,
	}, http.StatusOK)
}

func (handler *Handler) HandleInterpret(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.interpret")
	defer span.End()

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("coach interpret, unmarshal json body: %s", err)
		writeFailure(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in, err := handler.service.Interpret(ctx, req.Message, req.Timezone, clientIP(r))
	if err != nil {
		writeFailure(w, err.Error(), http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, in, http.StatusOK)
}

func (handler *Handler) HandleContext(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.context")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		writeFailure(w, ErrMissingUserID.Error(), http.StatusBadRequest)
		return
	}
	if !subjectAllowed(ctx, userID) {
		writeFailure(w, "user mismatch", http.StatusForbidden)
		return
	}

	digest := handler.service.Context(ctx, userID, r.URL.Query().Get("timezone"), clientIP(r))
	pkg.WriteTextResponseOK(w, digest)
}

// subjectAllowed is true when auth is off or the token subject owns userID.
func subjectAllowed(ctx context.Context, userID string) bool {
	claims, ok := auth.FromContext(ctx)
	if !ok {
		return true
	}
	return claims.Subject == userID
}

func clientIP(r *http.Request) string {
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Tracef("read user ip: %s", err)
		return ""
	}
	return ip
}

func writeFailure(w http.ResponseWriter, message string, statusCode int) {
	pkg.WriteJSON(w, FailureResponse{
		Error:   message,
		Success: false,
	}, statusCode)
}
