package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeChatService struct {
	reply string
	err   error
}

func (f *fakeChatService) Complete(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	return f.reply, f.err
}

func newChatApp(svc *fakeChatService) *fiber.App {
	app := fiber.New()
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, raw
}

func TestChatProxySuccess(t *testing.T) {
	app := newChatApp(&fakeChatService{reply: "Hi there!"})

	resp, raw := postChat(t, app, `{"messages":[{"role":"user","content":"Hello"}]}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.ChatProxyResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Hi there!", body.Message)
}

func TestChatProxyMissingMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no messages field", `{}`},
		{"messages not an array", `{"messages":"hello"}`},
		{"not json", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newChatApp(&fakeChatService{reply: "unused"})
			resp, raw := postChat(t, app, tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body dto.ChatProxyError
			assert.NoError(t, json.Unmarshal(raw, &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestChatProxyFailureStatusMapping(t *testing.T) {
	tests := []struct {
		gatewayStatus int
		wantStatus    int
		wantError     string
	}{
		{401, http.StatusUnauthorized, "Invalid API key"},
		{429, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later"},
		{402, http.StatusPaymentRequired, "Insufficient balance. Please check your account"},
		{500, http.StatusInternalServerError, "Failed to get response from AI service"},
	}

	for _, tt := range tests {
		app := newChatApp(&fakeChatService{err: llm.Classify(tt.gatewayStatus)})
		resp, raw := postChat(t, app, `{"messages":[{"role":"user","content":"Hello"}]}`)

		assert.Equal(t, tt.wantStatus, resp.StatusCode)
		var body dto.ChatProxyError
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, tt.wantError, body.Error)
	}
}

func TestChatProxyMethodNotAllowed(t *testing.T) {
	app := newChatApp(&fakeChatService{reply: "unused"})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req, _ := http.NewRequest(method, "/api/chat", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
	}
}

func TestChatProxyEmptyMessageList(t *testing.T) {
	// An empty list is still a sequence: it passes validation and reaches
	// the gateway unchanged.
	app := newChatApp(&fakeChatService{reply: "hello"})
	resp, _ := postChat(t, app, `{"messages":[]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
