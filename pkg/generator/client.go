package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash-image"

	msgMissingAPIKey   = "API Key is missing. Please check your environment configuration."
	msgGenerateFailed  = "Failed to generate image."
	msgNoImageReturned = "No image data found in the response. The model may have returned text instead."
)

var _ ImageGenerator = (*GeminiImageClient)(nil)

// Config は GeminiImageClient の設定です。
// APIKey は空でも構いません。その場合は生成時に ConfigurationError になります。
type Config struct {
	APIKey string
	Model  string
}

// GeminiImageClient はプロンプトと縦横比から Gemini で画像を1枚生成します。
// 内部状態は持たず、1回の呼び出しで1回だけ API にリクエストします。
type GeminiImageClient struct {
	cfg     Config
	factory GeneratorFactory
	now     func() time.Time
	newID   func() string
}

// NewGeminiImageClient は設定と ContentGenerator の生成関数を注入して初期化します。
func NewGeminiImageClient(cfg Config, factory GeneratorFactory) (*GeminiImageClient, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory (GeneratorFactory) is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &GeminiImageClient{
		cfg:     cfg,
		factory: factory,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// Model は利用するモデル名を返します。
func (c *GeminiImageClient) Model() string {
	return c.cfg.Model
}

// Generate は画像を生成し、表示可能な GeneratedArtifact を返します。
// 失敗時は *domain.GenerationError を返し、リトライは行いません。
func (c *GeminiImageClient) Generate(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedArtifact, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.GeneratedArtifact{}, domain.ErrEmptyPrompt
	}
	if !aspectRatio.Valid() {
		return domain.GeneratedArtifact{}, fmt.Errorf("%w: %q", domain.ErrInvalidAspectRatio, aspectRatio)
	}

	// 認証情報が無ければ通信せずに終了
	if c.cfg.APIKey == "" {
		slog.WarnContext(ctx, "APIキーが設定されていないため画像生成を中止しました")
		return domain.GeneratedArtifact{}, domain.NewConfigurationError(msgMissingAPIKey)
	}

	slog.InfoContext(ctx, "Gemini画像生成リクエスト", "model", c.cfg.Model, "aspect_ratio", aspectRatio)

	out, err := c.execute(ctx, prompt, aspectRatio)
	if err != nil {
		return domain.GeneratedArtifact{}, err
	}

	artifact := domain.GeneratedArtifact{
		ID:          c.newID(),
		ImageURL:    domain.EncodeDataURL(out.MimeType, out.Data),
		MimeType:    out.MimeType,
		Prompt:      prompt,
		AspectRatio: aspectRatio,
		CreatedAt:   c.now(),
	}
	slog.InfoContext(ctx, "画像を生成しました", "id", artifact.ID, "mime_type", artifact.MimeType, "size", len(out.Data))
	return artifact, nil
}

func (c *GeminiImageClient) execute(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (*ImageOutput, error) {
	gen, err := c.factory(ctx, c.cfg.APIKey)
	if err != nil {
		slog.ErrorContext(ctx, "genaiクライアントの作成に失敗しました", "error", err)
		return nil, serviceError(err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: string(aspectRatio)},
	}

	resp, err := gen.GenerateContent(ctx, c.cfg.Model, contents, config)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini画像生成エラー", "error", err)
		return nil, serviceError(err)
	}

	out, err := parseToOutput(resp)
	if err != nil {
		slog.WarnContext(ctx, "応答に画像が含まれていませんでした", "error", err)
		return nil, err
	}
	return out, nil
}

// serviceError は上流のメッセージを保持した ServiceError を作ります。
func serviceError(err error) error {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = msgGenerateFailed
	}
	return domain.NewServiceError(msg, err)
}
