package dto

import (
	"github.com/google/uuid"

	"ai-chatbox-be/internal/session"
)

type CreateSessionRequest struct {
	// Optional archival target; without it the session is memory-only.
	UserId         *uuid.UUID `json:"user_id,omitempty"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
}

type SessionStateResponse struct {
	Id          string              `json:"id"`
	State       session.State       `json:"state"`
	Turns       []session.Turn      `json:"turns"`
	Preferences session.Preferences `json:"preferences"`
}

type SubmitTurnRequest struct {
	Text string `json:"text"`
}

type SubmitTurnResponse struct {
	Accepted bool           `json:"accepted"`
	State    session.State  `json:"state"`
	Turns    []session.Turn `json:"turns"`
}

// PreferenceActionRequest drives the display-preference state machines.
type PreferenceActionRequest struct {
	Action string `json:"action" validate:"required,oneof=toggle_theme toggle_panel close_panel set_auto_scroll set_font_size set_response_length"`
	Value  string `json:"value,omitempty"`
}

type PreferenceResponse struct {
	Preferences session.Preferences `json:"preferences"`
}
