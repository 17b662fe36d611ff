package bootstrap

import (
	"log"

	"ai-chatbox-be/internal/config"
	"ai-chatbox-be/internal/controller"
	"ai-chatbox-be/internal/pkg/logger"
	"ai-chatbox-be/internal/repository/memory"
	"ai-chatbox-be/internal/repository/unitofwork"
	"ai-chatbox-be/internal/service"
	"ai-chatbox-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController         controller.IChatController
	SessionController      controller.ISessionController
	ConversationController controller.IConversationController

	// Background Services (Exposed for main.go to run)
	ArchiveService service.IArchiveService
}

// NewContainer wires the dependency graph. db may be nil: persistence then
// degrades to a no-op while the chat path keeps working.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Println("[WARN] No database configured, conversation archival is disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Topics.ArchiveExchange, pubSub)
	archiveService := service.NewArchiveService(
		pubSub,
		cfg.Topics.ArchiveExchange,
		uowFactory,
		sysLogger,
	)

	chatService := service.NewChatService(llmProvider, cfg.Ai.MaxTokens, cfg.Ai.Temperature)
	sessionService := service.NewSessionService(
		sessionRepo,
		llmProvider,
		publisherService,
		cfg.Ai.MaxTokens,
		cfg.Ai.Temperature,
	)

	// A nil factory degrades every conversation endpoint, not the chat path
	conversationService := service.NewConversationService(uowFactory)

	// 6. Controllers
	return &Container{
		ChatController:         controller.NewChatController(chatService),
		SessionController:      controller.NewSessionController(sessionService),
		ConversationController: controller.NewConversationController(conversationService),

		ArchiveService: archiveService,
	}
}
