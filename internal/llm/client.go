package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = openai.GPT4oMini

	maxErrorBodyLen = 300
)

var ErrNotConfigured = errors.New("text generation api key not configured")

type ClientParams struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	// HTTPClient overrides the default traced client, mostly for tests.
	HTTPClient     *http.Client
	MetricsManager *metrics.Manager
}

// Client calls an OpenAI compatible chat completions endpoint.
type Client struct {
	api            *openai.Client
	apiKey         string
	model          string
	temperature    float32
	maxTokens      int
	metricsManager *metrics.Manager
}

func NewClient(params ClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := params.Model
	if model == "" {
		model = DefaultModel
	}

	apiConfig := openai.DefaultConfig(params.APIKey)
	apiConfig.BaseURL = baseURL
	apiConfig.HTTPClient = httpClient

	return &Client{
		api:            openai.NewClientWithConfig(apiConfig),
		apiKey:         params.APIKey,
		model:          model,
		temperature:    float32(params.Temperature),
		maxTokens:      params.MaxTokens,
		metricsManager: params.MetricsManager,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Generate sends one system prompt and one user message and returns the completion text.
// Failures are returned as is, there is no retry.
func (c *Client) Generate(ctx context.Context, systemPrompt, userMessage string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "llm.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("llm.model", c.model))

	if !c.Configured() {
		return "", ErrNotConfigured
	}

	if c.metricsManager != nil {
		defer func(begin time.Time) {
			c.metricsManager.HistTextGenDuration.Observe(time.Since(begin).Seconds())
			if err != nil {
				c.metricsManager.CounterTextGenFailures.Inc()
			}
		}(time.Now())
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			span.SetAttributes(attribute.Int("http.status_code", apiErr.HTTPStatusCode))
			return "", fmt.Errorf("chat completions status %d: %w", apiErr.HTTPStatusCode, err)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			span.SetAttributes(attribute.Int("http.status_code", reqErr.HTTPStatusCode))
			return "", fmt.Errorf("chat completions status %d: %s", reqErr.HTTPStatusCode, shorten(string(reqErr.Body)))
		}
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completions returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completions returned empty content")
	}

	log.Debugf("llm: got completion of %d chars, %d tokens used", len(content), resp.Usage.TotalTokens)
	return content, nil
}

func shorten(s string) string {
	if len(s) <= maxErrorBodyLen {
		return s
	}
	return s[:maxErrorBodyLen] + "..."
}
