package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catPrompt = "a cat who is selling an apple on the road"

func newTestStore(t *testing.T, gen *mockGenerator) *Store {
	t.Helper()
	s, err := NewStore(gen)
	require.NoError(t, err)
	return s
}

func submitAndWait(t *testing.T, s *Store, prompt string, ratio domain.AspectRatio) {
	t.Helper()
	done, ok := s.Submit(context.Background(), prompt, ratio)
	require.True(t, ok, "submit should be accepted")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("generation did not resolve")
	}
}

func TestNewStore(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestStore_Submit(t *testing.T) {
	t.Run("成功すると履歴に追加され表示対象になる", func(t *testing.T) {
		gen := &mockGenerator{}
		s := newTestStore(t, gen)

		submitAndWait(t, s, catPrompt, domain.AspectSquare)

		st := s.Snapshot()
		require.Len(t, st.History, 1)
		require.NotNil(t, st.Current)
		assert.Equal(t, catPrompt, st.Current.Prompt)
		assert.Equal(t, domain.AspectSquare, st.Current.AspectRatio)
		assert.False(t, st.InProgress)
		assert.NoError(t, st.LastError)
		assert.Equal(t, Idle, s.Phase())
	})

	t.Run("連続で成功すると新しいものが先頭に来る", func(t *testing.T) {
		s := newTestStore(t, &mockGenerator{})

		submitAndWait(t, s, "first", domain.AspectSquare)
		submitAndWait(t, s, "second", domain.AspectLandscape169)

		st := s.Snapshot()
		require.Len(t, st.History, 2)
		assert.Equal(t, "second", st.History[0].Prompt)
		assert.Equal(t, "first", st.History[1].Prompt)
		assert.Equal(t, st.History[0].ID, st.Current.ID)
	})

	t.Run("生成中の Submit は何もしない", func(t *testing.T) {
		gen := &mockGenerator{hold: make(chan generateResult)}
		s := newTestStore(t, gen)

		done, ok := s.Submit(context.Background(), catPrompt, domain.AspectSquare)
		require.True(t, ok)
		assert.True(t, s.Snapshot().InProgress)
		assert.Equal(t, Generating, s.Phase())

		before := s.Snapshot()
		_, ok = s.Submit(context.Background(), "another", domain.AspectSquare)
		assert.False(t, ok)
		after := s.Snapshot()
		assert.Equal(t, before, after)

		gen.hold <- generateResult{}
		<-done
		assert.Equal(t, 1, gen.callCount())
		assert.Len(t, s.Snapshot().History, 1)
	})

	t.Run("空白のみのプロンプトは何もしない", func(t *testing.T) {
		gen := &mockGenerator{}
		s := newTestStore(t, gen)

		for _, p := range []string{"", "   ", "\n\t"} {
			_, ok := s.Submit(context.Background(), p, domain.AspectSquare)
			assert.False(t, ok)
		}
		assert.Zero(t, gen.callCount())
		assert.False(t, s.Snapshot().InProgress)
	})

	t.Run("未定義の縦横比は何もしない", func(t *testing.T) {
		gen := &mockGenerator{}
		s := newTestStore(t, gen)

		_, ok := s.Submit(context.Background(), catPrompt, domain.AspectRatio("5:4"))
		assert.False(t, ok)
		assert.Zero(t, gen.callCount())
	})

	t.Run("失敗すると履歴と表示は変わらずエラーが記録される", func(t *testing.T) {
		gen := &mockGenerator{results: []error{nil, domain.NewNoImageDataError("No image data found")}}
		s := newTestStore(t, gen)

		submitAndWait(t, s, "first", domain.AspectSquare)
		before := s.Snapshot()

		submitAndWait(t, s, "second", domain.AspectSquare)
		after := s.Snapshot()

		assert.Len(t, after.History, len(before.History))
		assert.Equal(t, before.Current, after.Current)
		assert.False(t, after.InProgress)
		kind, ok := domain.KindOf(after.LastError)
		require.True(t, ok)
		assert.Equal(t, domain.KindNoImageData, kind)
	})

	t.Run("テキストのみの応答で履歴は空のまま", func(t *testing.T) {
		gen := &mockGenerator{results: []error{domain.NewNoImageDataError("No image data found")}}
		s := newTestStore(t, gen)

		submitAndWait(t, s, catPrompt, domain.AspectSquare)

		st := s.Snapshot()
		assert.Empty(t, st.History)
		assert.Nil(t, st.Current)
		kind, _ := domain.KindOf(st.LastError)
		assert.Equal(t, domain.KindNoImageData, kind)
	})

	t.Run("新しい Submit は前回のエラーを消してから開始する", func(t *testing.T) {
		gen := &mockGenerator{results: []error{domain.NewServiceError("boom", nil)}}
		s := newTestStore(t, gen)

		submitAndWait(t, s, catPrompt, domain.AspectSquare)
		require.Error(t, s.Snapshot().LastError)

		gen.hold = make(chan generateResult)
		done, ok := s.Submit(context.Background(), catPrompt, domain.AspectSquare)
		require.True(t, ok)
		st := s.Snapshot()
		assert.True(t, st.InProgress)
		assert.NoError(t, st.LastError)

		gen.hold <- generateResult{}
		<-done
	})

	t.Run("空メッセージのエラーは汎用メッセージに置き換える", func(t *testing.T) {
		s := newTestStore(t, &mockGenerator{results: []error{errors.New("")}})

		submitAndWait(t, s, catPrompt, domain.AspectSquare)
		assert.EqualError(t, s.Snapshot().LastError, msgUnknownFailure)
	})

	t.Run("呼び出し元の ctx がキャンセルされても生成は完了する", func(t *testing.T) {
		gen := &mockGenerator{hold: make(chan generateResult)}
		s := newTestStore(t, gen)

		ctx, cancel := context.WithCancel(context.Background())
		done, ok := s.Submit(ctx, catPrompt, domain.AspectSquare)
		require.True(t, ok)
		cancel()

		gen.hold <- generateResult{}
		<-done
		assert.Len(t, s.Snapshot().History, 1)
	})
}

func TestStore_Select(t *testing.T) {
	s := newTestStore(t, &mockGenerator{results: []error{nil, nil, domain.NewServiceError("later failure", nil)}})
	submitAndWait(t, s, "first", domain.AspectSquare)
	submitAndWait(t, s, "second", domain.AspectSquare)
	submitAndWait(t, s, "third", domain.AspectSquare)

	before := s.Snapshot()
	older := before.History[1]

	t.Run("履歴にある成果物を選ぶと表示対象だけが変わる", func(t *testing.T) {
		assert.True(t, s.Select(older.ID))

		after := s.Snapshot()
		require.NotNil(t, after.Current)
		assert.Equal(t, older, *after.Current)
		assert.Equal(t, before.History, after.History)
		assert.Equal(t, before.InProgress, after.InProgress)
		assert.Equal(t, before.LastError, after.LastError)
	})

	t.Run("履歴に無い ID は無視する", func(t *testing.T) {
		assert.False(t, s.Select("missing"))
		assert.False(t, s.Select(""))
		assert.Equal(t, older.ID, s.Snapshot().Current.ID)
	})

	t.Run("Artifact で履歴を ID 検索できる", func(t *testing.T) {
		a, ok := s.Artifact(older.ID)
		require.True(t, ok)
		assert.Equal(t, older, a)

		_, ok = s.Artifact("missing")
		assert.False(t, ok)
	})
}

func TestStore_DismissError(t *testing.T) {
	s := newTestStore(t, &mockGenerator{results: []error{nil, domain.NewServiceError("quota exceeded", nil)}})
	submitAndWait(t, s, "first", domain.AspectSquare)
	submitAndWait(t, s, "second", domain.AspectSquare)

	before := s.Snapshot()
	require.EqualError(t, before.LastError, "quota exceeded")

	s.DismissError()

	after := s.Snapshot()
	assert.NoError(t, after.LastError)
	assert.Equal(t, before.History, after.History)
	assert.Equal(t, before.Current, after.Current)
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := newTestStore(t, &mockGenerator{})
	submitAndWait(t, s, catPrompt, domain.AspectSquare)

	st := s.Snapshot()
	st.History[0].Prompt = "mutated"

	assert.Equal(t, catPrompt, s.Snapshot().History[0].Prompt)
}
