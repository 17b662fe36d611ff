package llm

import "errors"

// FailureKind classifies a gateway failure by its transport status code.
// Exactly three codes get a named kind; everything else is generic.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureAuth                // 401
	FailureQuota               // 429
	FailureBalance             // 402
)

// Failure is a classified gateway error with a human-readable message.
type Failure struct {
	Kind    FailureKind
	Status  int
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Classify builds a Failure from an HTTP status code.
func Classify(status int) *Failure {
	switch status {
	case 401:
		return &Failure{Kind: FailureAuth, Status: status, Message: "Invalid API key"}
	case 429:
		return &Failure{Kind: FailureQuota, Status: status, Message: "Rate limit exceeded. Please try again later"}
	case 402:
		return &Failure{Kind: FailureBalance, Status: status, Message: "Insufficient balance. Please check your account"}
	default:
		return &Failure{Kind: FailureGeneric, Status: status, Message: "Failed to get response from AI service"}
	}
}

// AsFailure extracts a *Failure from an error chain, or wraps the error as a
// generic failure so callers always have a displayable message.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: FailureGeneric, Message: err.Error()}
}
