package service

import (
	"context"
	"fmt"

	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/internal/entity"
	"ai-chatbox-be/internal/repository/specification"
	"ai-chatbox-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowConversationResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
	}
}

var (
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrPersistenceDisabled  = fmt.Errorf("persistence is not configured")
)

func (c *conversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	if c.uowFactory == nil {
		return nil, ErrPersistenceDisabled
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversation := &entity.Conversation{
		UserId: userId,
		Title:  req.Title,
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}

	return &dto.CreateConversationResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
	}, nil
}

func (c *conversationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error) {
	if c.uowFactory == nil {
		return nil, ErrPersistenceDisabled
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllConversationsResponse, 0, len(conversations))
	for _, conversation := range conversations {
		result = append(result, &dto.GetAllConversationsResponse{
			Id:        conversation.Id,
			Title:     conversation.Title,
			CreatedAt: conversation.CreatedAt,
			UpdatedAt: conversation.UpdatedAt,
		})
	}
	return result, nil
}

func (c *conversationService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowConversationResponse, error) {
	if c.uowFactory == nil {
		return nil, ErrPersistenceDisabled
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Ownership check before touching messages
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := &dto.ShowConversationResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
		Messages:  make([]dto.ConversationMessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		result.Messages = append(result.Messages, dto.ConversationMessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return result, nil
}

func (c *conversationService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	if c.uowFactory == nil {
		return ErrPersistenceDisabled
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}

	if err := uow.MessageRepository().DeleteByConversationId(ctx, id); err != nil {
		return err
	}
	return uow.ConversationRepository().Delete(ctx, id)
}
