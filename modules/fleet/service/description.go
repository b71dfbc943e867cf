package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"castle-admin/core/config"
	"castle-admin/modules/fleet/dto"

	"google.golang.org/genai"
)

const (
	SourceGemini   = "gemini"
	SourceTemplate = "template"
)

// Describer writes marketing copy for a catalog item.
type Describer interface {
	Describe(ctx context.Context, req dto.DescriptionRequest) (string, error)
}

type GeminiDescriber struct {
	client *genai.Client
	model  string
}

func NewGeminiDescriber(ctx context.Context, cfg config.GeminiConfig) (*GeminiDescriber, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiDescriber{client: client, model: cfg.Model}, nil
}

func (g *GeminiDescriber) Describe(ctx context.Context, req dto.DescriptionRequest) (string, error) {
	prompt := fmt.Sprintf(`Write a short, friendly product description (2-3 sentences, under 60 words) for a UK party hire business.
Item: %s
Category: %s
Size: %s
Daily price: £%s
Return plain text only, no markdown, no quotes.`, req.Name, req.Category, orDash(req.Size), price(req.Price))

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: genai.Ptr(float32(0.7))},
	)
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no description generated")
	}
	text := strings.TrimSpace(strings.Trim(result.Candidates[0].Content.Parts[0].Text, "\"`"))
	if text == "" {
		return "", fmt.Errorf("empty description")
	}
	return text, nil
}

// TemplateDescription is the deterministic fallback copy.
func TemplateDescription(req dto.DescriptionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The %s is a fantastic %s", req.Name, strings.ToLower(req.Category))
	if req.Size != "" {
		fmt.Fprintf(&b, " measuring %s", req.Size)
	}
	b.WriteString(", perfect for birthdays and garden parties.")
	if req.Price > 0 {
		fmt.Fprintf(&b, " Available to hire from £%s per day.", price(req.Price))
	}
	b.WriteString(" Delivered, set up and collected by our friendly team.")
	return b.String()
}

func price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
