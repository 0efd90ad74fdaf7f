package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var ErrEmptyReply = errors.New("gemini returned an empty reply")

type GeminiConfig struct {
	APIKey      string
	TextModel   string
	VisionModel string
	// HTTPClient 가 nil 이면 genai 기본 클라이언트를 사용한다.
	HTTPClient *http.Client
}

// GeminiGenerator implements Generator on top of the Gemini API.
type GeminiGenerator struct {
	client      *genai.Client
	textModel   string
	visionModel string
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{
		client:      client,
		textModel:   cfg.TextModel,
		visionModel: cfg.VisionModel,
	}, nil
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (*Generation, error) {
	return g.generate(ctx, g.textModel, genai.Text(prompt))
}

func (g *GeminiGenerator) GenerateWithImage(ctx context.Context, instruction string, img Image) (*Generation, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(img.Data, img.MIMEType),
		}, genai.RoleUser),
	}
	return g.generate(ctx, g.visionModel, contents)
}

func (g *GeminiGenerator) generate(ctx context.Context, model string, contents []*genai.Content) (*Generation, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrEmptyReply
	}

	gen := &Generation{
		Text:         result.Text(),
		ModelName:    model,
		ModelVersion: result.ModelVersion,
	}
	if result.UsageMetadata != nil {
		gen.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		gen.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		gen.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
	}
	if gen.Text == "" {
		return gen, ErrEmptyReply
	}
	return gen, nil
}
