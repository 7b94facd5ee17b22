package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockGenerator は ContentGenerator のテスト用モックです。
type mockGenerator struct {
	calls       int
	lastModel   string
	lastContent []*genai.Content
	lastConfig  *genai.GenerateContentConfig
	resp        *genai.GenerateContentResponse
	err         error
}

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContent = contents
	m.lastConfig = config
	return m.resp, m.err
}

// mockFactory は呼び出し回数と渡された API キーを記録します。
type mockFactory struct {
	calls   int
	lastKey string
	gen     *mockGenerator
	err     error
}

func (f *mockFactory) create(ctx context.Context, apiKey string) (ContentGenerator, error) {
	f.calls++
	f.lastKey = apiKey
	if f.err != nil {
		return nil, f.err
	}
	return f.gen, nil
}

func imagePart(mimeType string, data []byte) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

func responseWith(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: parts},
		}},
	}
}
