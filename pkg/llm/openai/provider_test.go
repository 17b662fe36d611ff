package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-chatbox-be/pkg/llm"
)

func TestChatSuccess(t *testing.T) {
	var gotReq chatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Id: "cmpl-1",
			Choices: []chatCompletionChoice{
				{Index: 0, Message: chatMessage{Role: "assistant", Content: "Hi there!"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "sk-test", "deepseek-chat")
	reply, err := p.Chat(context.Background(),
		[]llm.Message{
			{Role: "assistant", Content: "greeting"},
			{Role: "user", Content: "Hello"},
		},
		llm.WithMaxTokens(500),
		llm.WithTemperature(0.3),
	)

	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply != "Hi there!" {
		t.Errorf("reply = %q, want %q", reply, "Hi there!")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "deepseek-chat" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 500 || gotReq.Temperature != 0.3 {
		t.Errorf("generation limits = (%d, %v)", gotReq.MaxTokens, gotReq.Temperature)
	}
	if gotReq.Stream {
		t.Error("stream must be false")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "Hello" {
		t.Errorf("transmitted messages = %+v", gotReq.Messages)
	}
}

func TestChatClassifiesFailureStatus(t *testing.T) {
	tests := []struct {
		status   int
		wantKind llm.FailureKind
	}{
		{401, llm.FailureAuth},
		{429, llm.FailureQuota},
		{402, llm.FailureBalance},
		{500, llm.FailureGeneric},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		p := NewOpenAIProvider(srv.URL, "sk-test", "deepseek-chat")
		_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		var failure *llm.Failure
		if !errors.As(err, &failure) {
			t.Fatalf("status %d: error %T is not a classified failure", tt.status, err)
		}
		if failure.Kind != tt.wantKind {
			t.Errorf("status %d: Kind = %d, want %d", tt.status, failure.Kind, tt.wantKind)
		}
	}
}

func TestChatEmptyChoicesIsGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{Id: "cmpl-2"})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "sk-test", "deepseek-chat")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

	var failure *llm.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("error %T is not a classified failure", err)
	}
	if failure.Kind != llm.FailureGeneric {
		t.Errorf("Kind = %d, want generic", failure.Kind)
	}
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []chatCompletionChoice{{Message: chatMessage{Content: "ok"}}},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "sk-test", "deepseek-chat")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "model", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if gotReq.Messages[0].Role != "assistant" {
		t.Errorf("role = %q, want assistant", gotReq.Messages[0].Role)
	}
}
