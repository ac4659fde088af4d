package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/finchat/internal/chat"
	apierrors "github.com/longkey1/finchat/internal/errors"
)

type testConfig struct {
	model   string
	baseURL string
	token   string
}

func (c testConfig) GetModel() string   { return c.model }
func (c testConfig) GetBaseURL() string { return c.baseURL }
func (c testConfig) GetToken() string   { return c.token }

func newTestServer(t *testing.T, status int, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestComplete_RequestShape(t *testing.T) {
	var got ChatCompletionRequest
	srv := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"A bond is debt."}}]}`, func(r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL + "/", token: "sk-test"})
	turns := []chat.Turn{
		{Role: chat.RoleSystem, Content: "sys"},
		{Role: chat.RoleUser, Content: "What is a bond?"},
	}

	content, err := p.Complete(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "A bond is debt.", content)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, turns, got.Messages)
}

func TestComplete_Responses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantContent string
		wantKind    apierrors.Kind
		wantParse   bool
		wantStatus  int
	}{
		{
			name:        "content",
			status:      http.StatusOK,
			body:        `{"choices":[{"message":{"content":"hello"}}]}`,
			wantContent: "hello",
			wantKind:    apierrors.KindNone,
		},
		{
			name:     "empty choices",
			status:   http.StatusOK,
			body:     `{"choices":[]}`,
			wantKind: apierrors.KindNone,
		},
		{
			name:     "null content",
			status:   http.StatusOK,
			body:     `{"choices":[{"message":{"content":null}}]}`,
			wantKind: apierrors.KindNone,
		},
		{
			name:      "missing choices",
			status:    http.StatusOK,
			body:      `{"id":"x"}`,
			wantKind:  apierrors.KindUpstream,
			wantParse: true,
		},
		{
			name:      "invalid json",
			status:    http.StatusOK,
			body:      `<html>oops</html>`,
			wantKind:  apierrors.KindUpstream,
			wantParse: true,
		},
		{
			name:      "content not a string",
			status:    http.StatusOK,
			body:      `{"choices":[{"message":{"content":{"a":1}}}]}`,
			wantKind:  apierrors.KindUpstream,
			wantParse: true,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Incorrect API key provided"}}`,
			wantKind:   apierrors.KindUpstream,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `internal`,
			wantKind:   apierrors.KindUpstream,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body, nil)
			p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL, token: "sk-test"})

			content, err := p.Complete(context.Background(), []chat.Turn{{Role: chat.RoleUser, Content: "hi"}})
			assert.Equal(t, tt.wantContent, content)
			assert.Equal(t, tt.wantKind, apierrors.Classify(err))
			assert.Equal(t, tt.wantParse, errors.Is(err, apierrors.ErrInvalidResponse))
			assert.Equal(t, tt.wantStatus, apierrors.GetStatusCode(err))
		})
	}
}

func TestComplete_APIErrorMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached"}}`, nil)
	p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL, token: "sk-test"})

	_, err := p.Complete(context.Background(), nil)
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Rate limit reached", apiErr.Message)
	assert.Equal(t, "/chat/completions", apiErr.Endpoint)
}

func TestComplete_MissingCredential(t *testing.T) {
	called := false
	srv := newTestServer(t, http.StatusOK, `{}`, func(*http.Request) { called = true })
	p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL, token: ""})

	_, err := p.Complete(context.Background(), nil)
	assert.ErrorIs(t, err, apierrors.ErrMissingCredential)
	assert.False(t, called, "no request may be sent without a token")
}

func TestComplete_NetworkError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close()

	p := NewProvider(testConfig{model: "gpt-4o", baseURL: url, token: "sk-test"})
	_, err := p.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apierrors.KindUpstream, apierrors.Classify(err))
}

func TestComplete_ThroughController(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"content":"Bonds pay coupons."}}]}`, nil)
	p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL, token: "sk-test"})
	c := chat.NewController(p)

	c.SendMessage(context.Background(), "What is a bond?", "bonds")
	assert.Equal(t, []chat.Message{
		{Text: "What is a bond?", Sender: chat.SenderUser, Topic: "bonds"},
		{Text: "Bonds pay coupons.", Sender: chat.SenderBot, Topic: "bonds"},
	}, c.Messages())
	assert.False(t, c.IsLoading())
}

func TestListModels(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"data":[{"id":"gpt-4o-mini","owned_by":"system"},{"id":"gpt-4o","owned_by":"system"},{"id":""}]}`, func(r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))
	})
	p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL, token: "sk-test"})

	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, ModelInfo{ID: "gpt-4o", OwnedBy: "system", IsDefault: true}, models[0])
	assert.Equal(t, ModelInfo{ID: "gpt-4o-mini", OwnedBy: "system", IsDefault: false}, models[1])
}

func TestListModels_Malformed(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"object":"list"}`, nil)
	p := NewProvider(testConfig{model: "gpt-4o", baseURL: srv.URL, token: "sk-test"})

	_, err := p.ListModels(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrInvalidResponse)
}
