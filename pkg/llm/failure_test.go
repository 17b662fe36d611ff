package llm

import (
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status      int
		wantKind    FailureKind
		wantMessage string
	}{
		{401, FailureAuth, "Invalid API key"},
		{429, FailureQuota, "Rate limit exceeded. Please try again later"},
		{402, FailureBalance, "Insufficient balance. Please check your account"},
		{500, FailureGeneric, "Failed to get response from AI service"},
		{503, FailureGeneric, "Failed to get response from AI service"},
		// Unnamed client codes also funnel into the generic class
		{408, FailureGeneric, "Failed to get response from AI service"},
		{413, FailureGeneric, "Failed to get response from AI service"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			f := Classify(tt.status)
			if f.Kind != tt.wantKind {
				t.Errorf("Kind = %d, want %d", f.Kind, tt.wantKind)
			}
			if f.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", f.Message, tt.wantMessage)
			}
			if f.Status != tt.status {
				t.Errorf("Status = %d, want %d", f.Status, tt.status)
			}
		})
	}
}

func TestAsFailure(t *testing.T) {
	classified := Classify(401)
	if got := AsFailure(classified); got != classified {
		t.Error("AsFailure should return the classified failure unchanged")
	}

	wrapped := fmt.Errorf("request: %w", Classify(429))
	if got := AsFailure(wrapped); got.Kind != FailureQuota {
		t.Errorf("AsFailure on wrapped error: Kind = %d, want quota", got.Kind)
	}

	plain := fmt.Errorf("dial tcp: connection refused")
	got := AsFailure(plain)
	if got.Kind != FailureGeneric {
		t.Errorf("plain error Kind = %d, want generic", got.Kind)
	}
	if got.Message != "dial tcp: connection refused" {
		t.Errorf("plain error Message = %q", got.Message)
	}
}
