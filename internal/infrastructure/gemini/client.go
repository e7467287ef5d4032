package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

const (
	DefaultModel = "gemini-1.5-flash"

	maxExplanationRunes = 400
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// ExplainMatch asks the model for a short explanation of an already scored
// match. It never changes the score or the matched skills.
func (c *GeminiClient) ExplainMatch(ctx context.Context, profile *domain.Profile, opp *domain.Opportunity, match domain.Match) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(buildExplanationPrompt(profile, opp, match)))
	if err != nil {
		return "", fmt.Errorf("generate explanation: %w", err)
	}
	return extractText(resp)
}

func buildExplanationPrompt(profile *domain.Profile, opp *domain.Opportunity, match domain.Match) string {
	var sb strings.Builder
	sb.WriteString("You explain why a candidate was matched to an opportunity.\n")
	fmt.Fprintf(&sb, "Opportunity: %s (%s, %s)\n", opp.Title, opp.Type, opp.WorkMode)
	fmt.Fprintf(&sb, "Required skills: %s\n", orNone(opp.RequiredSkills))
	fmt.Fprintf(&sb, "Candidate skills: %s\n", orNone(strings.Join(profile.Skills, ", ")))
	fmt.Fprintf(&sb, "Matched skills: %s\n", orNone(strings.Join(match.MatchedSkills, ", ")))
	fmt.Fprintf(&sb, "Education records: %d, employment records: %d\n", len(profile.Education), len(profile.EmploymentHistory))
	fmt.Fprintf(&sb, "Score: %d/100\n", match.Score)
	fmt.Fprintf(&sb, "Rule-based summary: %s\n", match.Reasoning)
	sb.WriteString("\nTask: write one or two plain sentences for the candidate explaining the fit. ")
	sb.WriteString("Do not mention a different score and do not invent skills.\n")
	sb.WriteString("Output: just the explanation text.")
	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.Join(strings.Fields(sb.String()), " ")
	if text == "" {
		return "", errors.New("empty explanation")
	}
	if runes := []rune(text); len(runes) > maxExplanationRunes {
		text = string(runes[:maxExplanationRunes]) + "..."
	}
	return text, nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
