package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/longkey1/finchat/internal/chat"
	apierrors "github.com/longkey1/finchat/internal/errors"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"
	DefaultTimeout = 60 * time.Second

	completionsPath = "/chat/completions"
	modelsPath      = "/models"
)

// ChatCompletionRequest represents the request body for the Chat Completions API
type ChatCompletionRequest struct {
	Model    string      `json:"model"`
	Messages []chat.Turn `json:"messages"`
}

// ModelInfo represents a model returned by the models endpoint
type ModelInfo struct {
	ID        string
	OwnedBy   string
	IsDefault bool
}

// Config defines the configuration interface for the OpenAI provider
type Config interface {
	GetModel() string
	GetBaseURL() string
	GetToken() string
}

// Option configures a Provider
type Option func(*Provider)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		if timeout > 0 {
			p.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// Provider talks to an OpenAI-compatible Chat Completions API.
// It implements chat.Completer.
type Provider struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ chat.Completer = (*Provider)(nil)

// NewProvider creates a new OpenAI provider instance
func NewProvider(config Config, opts ...Option) *Provider {
	p := &Provider{
		config:     config,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Complete sends the transcript and returns the first choice's content.
// An empty string with a nil error means the API returned no content.
func (p *Provider) Complete(ctx context.Context, turns []chat.Turn) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:    p.config.GetModel(),
		Messages: turns,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	body, err := p.do(ctx, http.MethodPost, completionsPath, jsonData)
	if err != nil {
		return "", err
	}

	return parseCompletion(body)
}

// parseCompletion extracts choices[0].message.content from a response body
func parseCompletion(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	choices := gjson.GetBytes(body, "choices")
	if !choices.IsArray() {
		return "", apierrors.NewParseError("choices is missing or not an array", "choices")
	}

	content := choices.Get("0.message.content")
	switch content.Type {
	case gjson.String, gjson.Null:
		return content.String(), nil
	default:
		return "", apierrors.NewParseError("content is not a string", "choices.0.message.content")
	}
}

// ListModels returns the models available to the configured token, sorted by ID
func (p *Provider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	body, err := p.do(ctx, http.MethodGet, modelsPath, nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, apierrors.NewParseError("data is missing or not an array", "data")
	}

	current := p.config.GetModel()
	var models []ModelInfo
	data.ForEach(func(_, value gjson.Result) bool {
		id := value.Get("id").String()
		if id == "" {
			return true
		}
		models = append(models, ModelInfo{
			ID:        id,
			OwnedBy:   value.Get("owned_by").String(),
			IsDefault: id == current,
		})
		return true
	})

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})
	return models, nil
}

// do sends an authenticated request and returns the body of a 2xx response
func (p *Provider) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	token := p.config.GetToken()
	if token == "" {
		return nil, apierrors.ErrMissingCredential
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	url := strings.TrimRight(p.config.GetBaseURL(), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	requestID := uuid.New().String()
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", requestID)

	logger := p.logger.With("request_id", requestID, "method", method, "path", path)
	logger.Debug("sending request")
	start := time.Now()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	logger.Debug("received response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierrors.NewAPIError(resp.StatusCode, path, errorMessage(body))
	}

	return body, nil
}

// errorMessage prefers the API's error.message field over the raw body
func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}
