package session

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation log. The log is append-only: a turn
// is never mutated or removed once appended. Failed exchanges appear as
// assistant turns whose content starts with "Error: ".
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ErrorPrefix marks assistant turns produced by a failed exchange.
const ErrorPrefix = "Error: "

// Greeting seeds every new conversation log.
const Greeting = "Hello! I'm your AI assistant. How can I help you today?"
