package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shouni/gemini-image-studio/pkg/domain"
)

const msgUnknownFailure = "Something went wrong while generating the image."

// Generator は Store が利用する画像生成クライアントです。
type Generator interface {
	Generate(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedArtifact, error)
}

// Phase はセッションの生成状態です。
type Phase int

const (
	Idle Phase = iota
	Generating
)

func (p Phase) String() string {
	if p == Generating {
		return "generating"
	}
	return "idle"
}

// State はある時点のセッション状態のコピーです。
// History は新しい順で、Current は History のいずれかを指します。
type State struct {
	History    []domain.GeneratedArtifact
	Current    *domain.GeneratedArtifact
	InProgress bool
	LastError  error
}

// Store は1セッション分の生成履歴と表示状態を保持します。
// 状態の変更はすべて Store のメソッドを経由します。
type Store struct {
	generator Generator

	mu        sync.Mutex
	phase     Phase
	history   []domain.GeneratedArtifact
	currentID string
	lastError error
}

// NewStore は Generator を注入して空のセッションを作ります。
func NewStore(generator Generator) (*Store, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	return &Store{generator: generator}, nil
}

// Submit は画像生成を非同期に開始します。
// プロンプトが空白のみ、縦横比が不正、または生成中の場合は何もせず false を返します。
// 返すチャネルは生成が完了(成功・失敗)した時点で閉じられます。
// 開始した生成は ctx がキャンセルされても中断されません。
func (s *Store) Submit(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (<-chan struct{}, bool) {
	if strings.TrimSpace(prompt) == "" || !aspectRatio.Valid() {
		return nil, false
	}

	s.mu.Lock()
	if s.phase == Generating {
		s.mu.Unlock()
		slog.InfoContext(ctx, "生成中のため新しいリクエストを無視しました")
		return nil, false
	}
	s.lastError = nil
	s.phase = Generating
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		genCtx := context.WithoutCancel(ctx)
		artifact, err := s.generator.Generate(genCtx, prompt, aspectRatio)
		s.resolve(genCtx, artifact, err)
	}()
	return done, true
}

func (s *Store) resolve(ctx context.Context, artifact domain.GeneratedArtifact, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = Idle
	if err != nil {
		if strings.TrimSpace(err.Error()) == "" {
			err = errors.New(msgUnknownFailure)
		}
		s.lastError = err
		slog.WarnContext(ctx, "画像生成に失敗しました", "error", err)
		return
	}

	s.history = append([]domain.GeneratedArtifact{artifact}, s.history...)
	s.currentID = artifact.ID
	slog.InfoContext(ctx, "履歴に追加しました", "id", artifact.ID, "history", len(s.history))
}

// Select は履歴にある成果物を表示対象にします。履歴に無い ID は無視して false を返します。
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(id); !ok {
		return false
	}
	s.currentID = id
	return true
}

// DismissError は直近のエラーを消去します。
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = nil
}

// Artifact は ID に一致する履歴上の成果物を返します。
func (s *Store) Artifact(id string) (domain.GeneratedArtifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// Phase は現在の生成状態を返します。
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot は現在の状態のコピーを返します。
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		History:    append([]domain.GeneratedArtifact(nil), s.history...),
		InProgress: s.phase == Generating,
		LastError:  s.lastError,
	}
	if cur, ok := s.find(s.currentID); ok {
		st.Current = &cur
	}
	return st
}

func (s *Store) find(id string) (domain.GeneratedArtifact, bool) {
	if id == "" {
		return domain.GeneratedArtifact{}, false
	}
	return lo.Find(s.history, func(a domain.GeneratedArtifact) bool {
		return a.ID == id
	})
}
