package generator

import (
	"context"

	"google.golang.org/genai"
)

// genaiModels は genai.Client の Models サービスを ContentGenerator として公開します。
type genaiModels struct {
	client *genai.Client
}

func (m *genaiModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.client.Models.GenerateContent(ctx, model, contents, config)
}

// NewGenAIGenerator は Gemini API バックエンドの genai クライアントを作成します。
func NewGenAIGenerator(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiModels{client: client}, nil
}
