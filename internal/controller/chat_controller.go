package controller

import (
	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/internal/service"
	"ai-chatbox-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.All("/chat", methodNotAllowed)
}

func methodNotAllowed(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusMethodNotAllowed).JSON(dto.ChatProxyError{Error: "Method not allowed"})
}

// Chat is the single-shot proxy: the full message list in, one reply out.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatProxyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatProxyError{Error: "Invalid request body"})
	}
	if req.Messages == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatProxyError{Error: "messages is required and must be an array"})
	}

	reply, err := c.service.Complete(ctx.Context(), req.Messages)
	if err != nil {
		failure := llm.AsFailure(err)
		return ctx.Status(failureStatus(failure)).JSON(dto.ChatProxyError{Error: failure.Message})
	}

	return ctx.JSON(dto.ChatProxyResponse{Message: reply})
}

func failureStatus(f *llm.Failure) int {
	switch f.Kind {
	case llm.FailureAuth:
		return fiber.StatusUnauthorized
	case llm.FailureQuota:
		return fiber.StatusTooManyRequests
	case llm.FailureBalance:
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}
