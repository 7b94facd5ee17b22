package inject

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do"
	"github.com/shouni/gemini-image-studio/internal/config"
	"github.com/shouni/gemini-image-studio/internal/server"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/session"
)

// Setup は設定からアプリケーションの依存関係を組み立てます。
// factory に nil を渡すと genai の実クライアントを使います。
func Setup(ctx context.Context, settings *config.Settings, factory generator.GeneratorFactory) *do.Injector {
	if factory == nil {
		factory = generator.NewGenAIGenerator
	}

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			slog.DebugContext(ctx, fmt.Sprintf(format, args...))
		},
	})

	do.ProvideValue[*config.Settings](injector, settings)
	do.ProvideValue[generator.GeneratorFactory](injector, factory)

	do.Provide[session.Generator](injector, func(i *do.Injector) (session.Generator, error) {
		s := do.MustInvoke[*config.Settings](i)
		return generator.NewGeminiImageClient(generator.Config{
			APIKey: s.APIKey,
			Model:  s.Model,
		}, do.MustInvoke[generator.GeneratorFactory](i))
	})
	do.Provide[*session.Store](injector, func(i *do.Injector) (*session.Store, error) {
		return session.NewStore(do.MustInvoke[session.Generator](i))
	})
	do.Provide[*server.HTTPServer](injector, func(i *do.Injector) (*server.HTTPServer, error) {
		s := do.MustInvoke[*config.Settings](i)
		return server.NewHTTPServer(do.MustInvoke[*session.Store](i), s.PreviewQuality)
	})

	return injector
}
