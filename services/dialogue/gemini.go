package dialogue

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Oracle is the NLU collaborator: prompt in, raw text out. It is treated as
// untrusted; the extractor validates everything it returns.
type Oracle interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiOracle backs the Oracle with the Gemini API.
type GeminiOracle struct {
	model *genai.GenerativeModel
}

func NewGeminiOracle(apiKey string) *GeminiOracle {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-2.0-flash")
	return &GeminiOracle{model: model}
}

func (g *GeminiOracle) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return flattenCandidates(resp)
}

// flattenCandidates joins the text parts of the first candidate. A
// safety-blocked prompt comes back with err == nil and no candidates; that is
// an error here so the caller's retry path engages.
func flattenCandidates(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no usable candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
