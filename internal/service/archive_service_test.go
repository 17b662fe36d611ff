package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/internal/entity"
	"ai-chatbox-be/internal/repository/contract"
	"ai-chatbox-be/internal/repository/specification"
	"ai-chatbox-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeMessageRepository struct {
	mu           sync.Mutex
	created      []*entity.Message
	findAllSpecs []specification.Specification
	deletedConv  uuid.UUID
	failAfter    int // fail on the Nth Create, 0 means never
}

func (r *fakeMessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAfter > 0 && len(r.created)+1 >= r.failAfter {
		return fmt.Errorf("connection refused")
	}
	r.created = append(r.created, msg)
	return nil
}

func (r *fakeMessageRepository) rows() []*entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Message(nil), r.created...)
}

func (r *fakeMessageRepository) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedConv = conversationId
	return nil
}

func (r *fakeMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.Lock()
	r.findAllSpecs = specs
	r.mu.Unlock()
	return r.rows(), nil
}

func (r *fakeMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows())), nil
}

type fakeUnitOfWork struct {
	messageRepo *fakeMessageRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository { return nil }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository           { return u.messageRepo }

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newArchivePayload() *dto.ArchiveExchangeMessage {
	return &dto.ArchiveExchangeMessage{
		ConversationId:   uuid.New(),
		UserId:           uuid.New(),
		UserContent:      "What is Go?",
		AssistantContent: "A programming language.",
	}
}

func TestSaveExchangeWritesBothRows(t *testing.T) {
	repo := &fakeMessageRepository{}
	factory := &fakeRepositoryFactory{uow: &fakeUnitOfWork{messageRepo: repo}}
	svc := NewArchiveService(nil, "archive", factory, noopLogger{})

	payload := newArchivePayload()
	outcome := svc.SaveExchange(context.Background(), payload)

	assert.True(t, outcome.Saved)
	assert.NoError(t, outcome.Err)
	rows := repo.rows()
	assert.Len(t, rows, 2)
	assert.Equal(t, "user", rows[0].Role)
	assert.Equal(t, payload.UserContent, rows[0].Content)
	assert.Equal(t, "assistant", rows[1].Role)
	assert.Equal(t, payload.AssistantContent, rows[1].Content)
	assert.Equal(t, payload.ConversationId, rows[0].ConversationId)
}

func TestSaveExchangeSkippedWithoutStore(t *testing.T) {
	svc := NewArchiveService(nil, "archive", nil, noopLogger{})

	outcome := svc.SaveExchange(context.Background(), newArchivePayload())

	assert.False(t, outcome.Saved)
	assert.NoError(t, outcome.Err)
}

func TestSaveExchangeFailedOnFirstWrite(t *testing.T) {
	repo := &fakeMessageRepository{failAfter: 1}
	factory := &fakeRepositoryFactory{uow: &fakeUnitOfWork{messageRepo: repo}}
	svc := NewArchiveService(nil, "archive", factory, noopLogger{})

	outcome := svc.SaveExchange(context.Background(), newArchivePayload())

	assert.False(t, outcome.Saved)
	assert.Error(t, outcome.Err)
	assert.Empty(t, repo.rows())
}

func TestSaveExchangeFailedOnSecondWriteKeepsUserRow(t *testing.T) {
	repo := &fakeMessageRepository{failAfter: 2}
	factory := &fakeRepositoryFactory{uow: &fakeUnitOfWork{messageRepo: repo}}
	svc := NewArchiveService(nil, "archive", factory, noopLogger{})

	outcome := svc.SaveExchange(context.Background(), newArchivePayload())

	assert.False(t, outcome.Saved)
	assert.Error(t, outcome.Err)
	rows := repo.rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, "user", rows[0].Role)
}

func TestConsumePersistsPublishedExchange(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	repo := &fakeMessageRepository{}
	factory := &fakeRepositoryFactory{uow: &fakeUnitOfWork{messageRepo: repo}}
	svc := NewArchiveService(pubSub, "archive", factory, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, svc.Consume(ctx))

	raw, err := json.Marshal(newArchivePayload())
	assert.NoError(t, err)
	assert.NoError(t, pubSub.Publish("archive", message.NewMessage(watermill.NewUUID(), raw)))

	assert.Eventually(t, func() bool {
		return len(repo.rows()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}
