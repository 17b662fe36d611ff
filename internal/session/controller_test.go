package session

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"ai-chatbox-be/pkg/llm"
)

// fakeCompleter scripts gateway behavior for controller tests.
type fakeCompleter struct {
	mu      sync.Mutex
	calls   int
	history [][]llm.Message
	reply   string
	err     error
	block   chan struct{} // when set, Chat waits until closed
}

func (f *fakeCompleter) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	f.calls++
	snapshot := make([]llm.Message, len(history))
	copy(snapshot, history)
	f.history = append(f.history, snapshot)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewControllerSeedsGreeting(t *testing.T) {
	c := NewController("s1", &fakeCompleter{})

	turns := c.Turns()
	if len(turns) != 1 {
		t.Fatalf("log length = %d, want 1", len(turns))
	}
	if turns[0].Role != RoleAssistant || turns[0].Content != Greeting {
		t.Errorf("seed turn = %+v, want assistant greeting", turns[0])
	}
	if c.State() != StateIdle {
		t.Errorf("initial state = %s, want idle", c.State())
	}
}

func TestSubmitTurnSuccess(t *testing.T) {
	gateway := &fakeCompleter{reply: "Hi there!"}
	c := NewController("s1", gateway)

	accepted := c.SubmitTurn(context.Background(), "Hello")
	if !accepted {
		t.Fatal("submission was rejected")
	}

	turns := c.Turns()
	want := []Turn{
		{Role: RoleAssistant, Content: Greeting},
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Hi there!"},
	}
	if len(turns) != len(want) {
		t.Fatalf("log length = %d, want %d", len(turns), len(want))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn[%d] = %+v, want %+v", i, turns[i], want[i])
		}
	}
	if c.Pending() {
		t.Error("controller still pending after exchange settled")
	}
}

func TestSubmitTurnSendsFullLog(t *testing.T) {
	gateway := &fakeCompleter{reply: "ok"}
	c := NewController("s1", gateway)

	c.SubmitTurn(context.Background(), "first")
	c.SubmitTurn(context.Background(), "second")

	if len(gateway.history) != 2 {
		t.Fatalf("gateway calls = %d, want 2", len(gateway.history))
	}
	// Second request carries seed + user + assistant + user
	second := gateway.history[1]
	if len(second) != 4 {
		t.Fatalf("second request history length = %d, want 4", len(second))
	}
	if second[3].Role != "user" || second[3].Content != "second" {
		t.Errorf("last transmitted message = %+v, want the new user turn", second[3])
	}
}

func TestSubmitTurnEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeCompleter{reply: "should not be called"}
			c := NewController("s1", gateway)

			accepted := c.SubmitTurn(context.Background(), tt.text)

			if accepted {
				t.Error("empty submission was accepted")
			}
			if got := len(c.Turns()); got != 1 {
				t.Errorf("log length = %d, want 1 (unchanged)", got)
			}
			if c.Pending() {
				t.Error("pending flag set by rejected submission")
			}
			if gateway.callCount() != 0 {
				t.Errorf("gateway called %d times, want 0", gateway.callCount())
			}
		})
	}
}

func TestSubmitTurnWhilePendingIsNoOp(t *testing.T) {
	release := make(chan struct{})
	gateway := &fakeCompleter{reply: "done", block: release}
	c := NewController("s1", gateway)

	first := make(chan bool)
	go func() {
		first <- c.SubmitTurn(context.Background(), "long running")
	}()

	// Wait for the first exchange to be in flight
	for c.State() != StatePending {
		runtime.Gosched()
	}

	if c.SubmitTurn(context.Background(), "interloper") {
		t.Error("submission accepted while an exchange was pending")
	}
	if gateway.callCount() != 1 {
		t.Errorf("gateway called %d times, want 1", gateway.callCount())
	}

	close(release)
	if !<-first {
		t.Fatal("first submission was rejected")
	}

	turns := c.Turns()
	if len(turns) != 3 {
		t.Fatalf("log length = %d, want 3 (interloper dropped)", len(turns))
	}
	if c.Pending() {
		t.Error("controller still pending")
	}
}

func TestLogGrowsByPairPerExchange(t *testing.T) {
	gateway := &fakeCompleter{reply: "ack"}
	c := NewController("s1", gateway)

	const k = 5
	for i := 0; i < k; i++ {
		c.SubmitTurn(context.Background(), fmt.Sprintf("turn %d", i))
	}

	if got, want := len(c.Turns()), 1+2*k; got != want {
		t.Errorf("log length after %d exchanges = %d, want %d", k, got, want)
	}
}

func TestSubmitTurnGatewayAuthFailure(t *testing.T) {
	gateway := &fakeCompleter{err: llm.Classify(401)}
	c := NewController("s1", gateway)

	c.SubmitTurn(context.Background(), "Hello")

	turns := c.Turns()
	last := turns[len(turns)-1]
	if last.Role != RoleAssistant {
		t.Errorf("last turn role = %s, want assistant", last.Role)
	}
	if last.Content != "Error: Invalid API key" {
		t.Errorf("last turn content = %q, want %q", last.Content, "Error: Invalid API key")
	}
	if c.Pending() {
		t.Error("pending not cleared after failure")
	}
}

func TestSubmitTurnGenericFailure(t *testing.T) {
	gateway := &fakeCompleter{err: fmt.Errorf("connection refused")}
	c := NewController("s1", gateway)

	c.SubmitTurn(context.Background(), "Hello")

	turns := c.Turns()
	last := turns[len(turns)-1]
	if last.Content != "Error: connection refused" {
		t.Errorf("last turn content = %q", last.Content)
	}
	// Failure is surfaced in the log, then the controller accepts a retry
	if !c.SubmitTurn(context.Background(), "retry") {
		t.Error("resubmission rejected after failure")
	}
}

func TestExchangeHookObservesSettledExchange(t *testing.T) {
	gateway := &fakeCompleter{reply: "archived reply"}

	var gotUser, gotReply Turn
	c := NewController("s1", gateway, WithExchangeHook(func(userTurn, replyTurn Turn) {
		gotUser = userTurn
		gotReply = replyTurn
	}))

	c.SubmitTurn(context.Background(), "archive me")

	if gotUser.Content != "archive me" || gotUser.Role != RoleUser {
		t.Errorf("hook user turn = %+v", gotUser)
	}
	if gotReply.Content != "archived reply" || gotReply.Role != RoleAssistant {
		t.Errorf("hook reply turn = %+v", gotReply)
	}
}
