package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
)

type generateResult struct {
	err error
}

// mockGenerator は Generate の呼び出しを記録し、release されるまで応答を保留できます。
type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	hold    chan generateResult // nil なら即座に成功する
	results []error
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedArtifact, error) {
	m.mu.Lock()
	m.calls++
	n := m.calls
	var err error
	if len(m.results) > 0 {
		err, m.results = m.results[0], m.results[1:]
	}
	hold := m.hold
	m.mu.Unlock()

	if hold != nil {
		r := <-hold
		err = r.err
	}
	if err != nil {
		return domain.GeneratedArtifact{}, err
	}
	return domain.GeneratedArtifact{
		ID:          fmt.Sprintf("artifact-%d", n),
		ImageURL:    domain.EncodeDataURL("image/png", []byte(prompt)),
		MimeType:    "image/png",
		Prompt:      prompt,
		AspectRatio: aspectRatio,
		CreatedAt:   time.Unix(int64(n), 0),
	}, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
