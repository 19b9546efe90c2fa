package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/assistant"
	"intellivend/internal/domain"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type AssistantHandler struct {
	AI      *assistant.Service
	Catalog *services.CatalogService
}

type chatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

const maxHistory = 20

// POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	msg, ok := validate.Text(req.Message, 1000)
	if !ok || msg == "" {
		return badRequest(c, "message", "Type a message")
	}
	history := req.History
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	products, err := h.Catalog.All(c.UserContext())
	if err != nil {
		return fail(c, "assistant.chat", err)
	}
	reply := h.AI.Chat(c.UserContext(), msg, products, history)
	return c.JSON(domain.ChatMessage{Role: domain.ChatModel, Text: reply})
}
