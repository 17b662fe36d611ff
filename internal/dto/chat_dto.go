package dto

// ChatMessage is one (role, content) pair on the proxy surface. No other
// session state crosses this boundary.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatProxyRequest is the body of POST /api/chat.
type ChatProxyRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatProxyResponse is the success body: a single text reply.
type ChatProxyResponse struct {
	Message string `json:"message"`
}

// ChatProxyError is the failure body for classified gateway errors.
type ChatProxyError struct {
	Error string `json:"error"`
}
