// Package quote drafts quote emails for workshop inquiries. The language
// model is an opaque collaborator: its output is returned verbatim and its
// failures surface to the caller.
package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/beatworks/workshop-dashboard/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Generator drafts a quote email for a booking inquiry.
type Generator interface {
	Draft(ctx context.Context, req domain.WorkshopRequest, tiers []domain.PricingTier) (string, error)
}

// AnthropicGenerator drafts quote emails with the Anthropic API.
type AnthropicGenerator struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewAnthropicGenerator creates a generator with the given API key and model.
func NewAnthropicGenerator(apiKey, model string) *AnthropicGenerator {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicGenerator{
		api:   &client,
		model: anthropic.Model(model),
	}
}

const systemPrompt = `You draft friendly, professional quote emails for a drum workshop business.
Given an inquiry and the available pricing packages, write a complete email body that
greets the contact by name, references their event details, recommends a suitable
package with its price, and invites them to reply with questions. Return only the
email body text, no subject line and no surrounding commentary.`

// BuildPrompt renders the inquiry and pricing packages into the user prompt.
func BuildPrompt(req domain.WorkshopRequest, tiers []domain.PricingTier) string {
	var sb strings.Builder
	sb.WriteString("Inquiry:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", req.Name)
	fmt.Fprintf(&sb, "- Email: %s\n", req.Email)
	if req.EventDate != nil {
		fmt.Fprintf(&sb, "- Event date: %s\n", req.EventDate.Format("2006-01-02"))
	}
	if req.Location != nil {
		fmt.Fprintf(&sb, "- Location: %s\n", *req.Location)
	}
	if req.GroupSize != nil {
		fmt.Fprintf(&sb, "- Group size: %d\n", *req.GroupSize)
	}
	if req.Message != nil {
		fmt.Fprintf(&sb, "- Message: %s\n", *req.Message)
	}

	if len(tiers) > 0 {
		sb.WriteString("\nPricing packages:\n")
		for _, tier := range tiers {
			fmt.Fprintf(&sb, "- %s: $%d.%02d", tier.Name, tier.PriceCents/100, tier.PriceCents%100)
			if tier.Description != nil {
				fmt.Fprintf(&sb, " (%s)", *tier.Description)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Draft sends the inquiry to the model and returns the drafted email body.
func (g *AnthropicGenerator) Draft(ctx context.Context, req domain.WorkshopRequest, tiers []domain.PricingTier) (string, error) {
	msg, err := g.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(req, tiers))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

var _ Generator = (*AnthropicGenerator)(nil)
