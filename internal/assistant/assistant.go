// Package assistant wraps the generative model behind the two storefront
// features that use it: product copywriting for vendors and the shopping
// chat. Model failures never reach the caller; they become fixed replies.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"intellivend/internal/domain"
	applog "intellivend/internal/log"
)

const (
	DescriptionFailed = "Error generating description. Please check your API Key."
	DescriptionEmpty  = "Could not generate description."
	ChatFailed        = "I'm currently offline (API Error). Please try again later."
	ChatEmpty         = "I'm having trouble thinking right now."
)

var ErrNoModel = errors.New("no model configured")

// Model is a text generation backend.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, system string, history []domain.ChatMessage, message string) (string, error)
}

type Service struct {
	Model Model
}

func New(m Model) *Service { return &Service{Model: m} }

func (s *Service) GenerateDescription(ctx context.Context, name, category, keywords string) string {
	out, err := s.generate(ctx, descriptionPrompt(name, category, keywords))
	if err != nil {
		applog.Error(nil, "ai.description.fail", err, map[string]any{"product": name})
		return DescriptionFailed
	}
	if strings.TrimSpace(out) == "" {
		return DescriptionEmpty
	}
	return out
}

// Chat answers message with the catalog as context. history holds the
// earlier turns, oldest first.
func (s *Service) Chat(ctx context.Context, message string, products []domain.Product, history []domain.ChatMessage) string {
	if s.Model == nil {
		applog.Error(nil, "ai.chat.fail", ErrNoModel, nil)
		return ChatFailed
	}
	out, err := s.Model.Chat(ctx, systemInstruction(products), history, message)
	if err != nil {
		applog.Error(nil, "ai.chat.fail", err, nil)
		return ChatFailed
	}
	if strings.TrimSpace(out) == "" {
		return ChatEmpty
	}
	return out
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.Model == nil {
		return "", ErrNoModel
	}
	return s.Model.Generate(ctx, prompt)
}

func descriptionPrompt(name, category, keywords string) string {
	return fmt.Sprintf(`You are an expert e-commerce copywriter for IntelliVend.
Write a compelling, SEO-friendly product description (max 100 words) for a product.

Product Name: %s
Category: %s
Keywords: %s

Tone: Professional yet persuasive.
Return ONLY the description text, no other conversational filler.`, name, category, keywords)
}

// CatalogSummary renders one line per product for the assistant's context.
func CatalogSummary(products []domain.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- ID: %s, Name: %s, Price: $%s, Category: %s, Vendor: %s",
			p.ID, p.Name, strconv.FormatFloat(p.Price, 'f', -1, 64), p.Category, p.VendorName))
	}
	return strings.Join(lines, "\n")
}

func systemInstruction(products []domain.Product) string {
	return `You are the "IntelliVend Assistant", an intelligent AI shopping assistant for the IntelliVend marketplace.
Your goal is to help users find products, compare prices, and answer questions about the catalog.

Current Product Catalog:
` + CatalogSummary(products) + `

Rules:
1. Be helpful, concise, and friendly.
2. If suggesting a product, mention its Name and Price.
3. If the user asks about something not in the catalog, politely suggest they check back later or recommend a similar category if available.
4. Keep responses under 3 sentences unless detailed comparison is asked.`
}
