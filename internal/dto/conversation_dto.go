package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type CreateConversationResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type GetAllConversationsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ConversationMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowConversationResponse struct {
	Id        uuid.UUID                     `json:"id"`
	Title     string                        `json:"title"`
	CreatedAt time.Time                     `json:"created_at"`
	Messages  []ConversationMessageResponse `json:"messages"`
}

// ArchiveExchangeMessage is the payload published after a settled exchange
// for best-effort archival.
type ArchiveExchangeMessage struct {
	ConversationId   uuid.UUID `json:"conversation_id"`
	UserId           uuid.UUID `json:"user_id"`
	UserContent      string    `json:"user_content"`
	AssistantContent string    `json:"assistant_content"`
}
