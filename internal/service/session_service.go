package service

import (
	"context"
	"fmt"
	"log"

	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/internal/repository/memory"
	"ai-chatbox-be/internal/session"
	"ai-chatbox-be/pkg/llm"

	"github.com/google/uuid"
)

// ISessionService owns live chat session controllers: one per browser
// session, held in memory until they expire or the client navigates away.
type ISessionService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionStateResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error)
	SubmitTurn(ctx context.Context, sessionId string, req *dto.SubmitTurnRequest) (*dto.SubmitTurnResponse, error)
	ApplyPreference(ctx context.Context, sessionId string, req *dto.PreferenceActionRequest) (*dto.PreferenceResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
}

type sessionService struct {
	sessionRepo *memory.SessionRepository
	llmProvider llm.LLMProvider
	publisher   IPublisherService
	maxTokens   int
	temperature float64
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	maxTokens int,
	temperature float64,
) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		publisher:   publisher,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

var ErrSessionNotFound = fmt.Errorf("session not found")

func (s *sessionService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionStateResponse, error) {
	id := uuid.NewString()

	opts := []session.ControllerOption{
		session.WithGenerationOptions(
			llm.WithMaxTokens(s.maxTokens),
			llm.WithTemperature(s.temperature),
		),
	}

	// Archival is attached only when the client names a target conversation.
	// The hook fires after the exchange settles and never blocks it.
	if req.UserId != nil && req.ConversationId != nil {
		userId := *req.UserId
		conversationId := *req.ConversationId
		opts = append(opts, session.WithExchangeHook(func(userTurn, replyTurn session.Turn) {
			err := s.publisher.PublishArchiveExchange(&dto.ArchiveExchangeMessage{
				ConversationId:   conversationId,
				UserId:           userId,
				UserContent:      userTurn.Content,
				AssistantContent: replyTurn.Content,
			})
			if err != nil {
				log.Printf("[WARN] Failed to publish archive event: %v", err)
			}
		}))
	}

	controller := session.NewController(id, s.llmProvider, opts...)
	s.sessionRepo.Save(controller)

	return snapshotResponse(controller), nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	controller, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	return snapshotResponse(controller), nil
}

func (s *sessionService) SubmitTurn(ctx context.Context, sessionId string, req *dto.SubmitTurnRequest) (*dto.SubmitTurnResponse, error) {
	controller, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	accepted := controller.SubmitTurn(ctx, req.Text)

	// Keep the TTL sliding while the session is active
	s.sessionRepo.Save(controller)

	return &dto.SubmitTurnResponse{
		Accepted: accepted,
		State:    controller.State(),
		Turns:    controller.Turns(),
	}, nil
}

func (s *sessionService) ApplyPreference(ctx context.Context, sessionId string, req *dto.PreferenceActionRequest) (*dto.PreferenceResponse, error) {
	controller, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	prefs := controller.UpdatePreferences(func(p *session.Preferences) {
		switch req.Action {
		case "toggle_theme":
			p.ToggleTheme()
		case "toggle_panel":
			p.TogglePanel()
		case "close_panel":
			p.ClosePanel()
		case "set_auto_scroll":
			p.SetAutoScroll(req.Value == "true")
		case "set_font_size":
			p.FontSize = req.Value
		case "set_response_length":
			p.ResponseLength = req.Value
		}
	})

	return &dto.PreferenceResponse{Preferences: prefs}, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionId string) error {
	s.sessionRepo.Delete(sessionId)
	return nil
}

func snapshotResponse(controller *session.Controller) *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		Id:          controller.Id(),
		State:       controller.State(),
		Turns:       controller.Turns(),
		Preferences: controller.Preferences(),
	}
}
