package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// Gemini completes prompts through Vertex AI.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Vertex-backed client. Credentials come from the
// ambient GCP environment (ADC or workload identity).
func NewGemini(ctx context.Context, projectID, location, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// genaiRole maps a conversation role onto the wire role names Vertex
// expects.
func genaiRole(r domain.Role) genai.Role {
	if r == domain.RoleAgent {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func (g *Gemini) Complete(ctx context.Context, systemPrompt, userPrompt string, history []domain.Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Content, genaiRole(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(userPrompt, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}
	return text, nil
}

var _ domain.CompletionClient = (*Gemini)(nil)
