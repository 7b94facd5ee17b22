package generator

import (
	"context"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"google.golang.org/genai"
)

// ImageGenerator はセッション層が利用する画像生成の窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedArtifact, error)
}

// ContentGenerator は genai の Models.GenerateContent と同じ形の呼び出しを抽象化します。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeneratorFactory は API キーから ContentGenerator を作ります。
// 認証情報の確認が済んでから呼ばれます。
type GeneratorFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)
