package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/internal/entity"
	"ai-chatbox-be/internal/pkg/logger"
	"ai-chatbox-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Outcome is the explicit result of a best-effort archival write. Callers
// decide whether to surface, retry, or ignore; conversation continuity never
// depends on a successful archive.
type Outcome struct {
	Saved bool
	Err   error
}

func Saved() Outcome {
	return Outcome{Saved: true}
}

func Skipped() Outcome {
	return Outcome{}
}

func Failed(err error) Outcome {
	return Outcome{Err: err}
}

// IArchiveService persists settled exchanges to the external relational
// store. With no store configured every write degrades to a no-op.
type IArchiveService interface {
	SaveExchange(ctx context.Context, payload *dto.ArchiveExchangeMessage) Outcome
	Consume(ctx context.Context) error
}

type archiveService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory // nil when persistence is not configured
	logger     logger.ILogger
}

func NewArchiveService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IArchiveService {
	return &archiveService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (as *archiveService) SaveExchange(ctx context.Context, payload *dto.ArchiveExchangeMessage) Outcome {
	if as.uowFactory == nil {
		return Skipped()
	}

	uow := as.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MessageRepository()

	// Two disconnected writes. No transaction spans the exchange: losing the
	// assistant row after the user row is an accepted gap of this scope.
	userMsg := &entity.Message{
		ConversationId: payload.ConversationId,
		Role:           "user",
		Content:        payload.UserContent,
	}
	if err := repo.Create(ctx, userMsg); err != nil {
		return Failed(err)
	}

	assistantMsg := &entity.Message{
		ConversationId: payload.ConversationId,
		Role:           "assistant",
		Content:        payload.AssistantContent,
	}
	if err := repo.Create(ctx, assistantMsg); err != nil {
		return Failed(err)
	}

	return Saved()
}

func (as *archiveService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (as *archiveService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveExchangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal archive message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	outcome := as.SaveExchange(ctx, &payload)
	if outcome.Err != nil {
		// Logged and dropped: archival failure must not disturb the chat path
		as.logger.Error("archive", "Failed to archive exchange", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
			"error":           outcome.Err.Error(),
		})
		msg.Ack()
		return
	}

	if outcome.Saved {
		as.logger.Info("archive", "Exchange archived", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
		})
	}
	msg.Ack()
}
