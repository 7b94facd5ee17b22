package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"
	"github.com/shouni/gemini-image-studio/pkg/session"
)

// SessionStore は画面から利用するセッション操作です。
type SessionStore interface {
	Submit(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (<-chan struct{}, bool)
	Select(id string) bool
	DismissError()
	Snapshot() session.State
	Artifact(id string) (domain.GeneratedArtifact, bool)
}

// HTTPServer は生成フォーム・プレビュー・履歴の画面と JSON API を提供します。
type HTTPServer struct {
	store          SessionStore
	page           *templator
	previewQuality int
}

// NewHTTPServer は SessionStore を注入して HTTPServer を作ります。
func NewHTTPServer(store SessionStore, previewQuality int) (*HTTPServer, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &HTTPServer{
		store:          store,
		page:           &templator{},
		previewQuality: previewQuality,
	}, nil
}

// Handler はルーティング済みの http.Handler を返します。
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

func (s *HTTPServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /generate", s.handleGenerateForm)
	mux.HandleFunc("POST /select/{id}", s.handleSelectForm)
	mux.HandleFunc("POST /dismiss", s.handleDismissForm)
	mux.HandleFunc("GET /artifacts/{id}/download", s.handleDownload)
	mux.HandleFunc("GET /artifacts/{id}/preview", s.handlePreview)

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/generate", s.handleGenerateAPI)
	mux.HandleFunc("POST /api/select/{id}", s.handleSelectAPI)
	mux.HandleFunc("POST /api/dismiss", s.handleDismissAPI)
}

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	params := pageParams{
		State:       st,
		Ratios:      domain.AspectRatioOptions,
		Prompt:      domain.DefaultPrompt,
		AspectRatio: domain.DefaultAspectRatio,
	}
	if st.Current != nil {
		params.Prompt = st.Current.Prompt
		params.AspectRatio = st.Current.AspectRatio
	}

	body, err := s.page.render(params)
	if err != nil {
		slog.ErrorContext(r.Context(), "画面の描画に失敗しました", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (s *HTTPServer) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	// 空のプロンプトや生成中の送信は Store 側で無視される
	s.store.Submit(r.Context(), r.PostFormValue("prompt"), domain.AspectRatio(r.PostFormValue("aspectRatio")))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *HTTPServer) handleSelectForm(w http.ResponseWriter, r *http.Request) {
	s.store.Select(r.PathValue("id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *HTTPServer) handleDismissForm(w http.ResponseWriter, r *http.Request) {
	s.store.DismissError()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *HTTPServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.Artifact(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := a.ImageBytes()
	if err != nil {
		slog.ErrorContext(r.Context(), "画像のデコードに失敗しました", "id", a.ID, "error", err)
		http.Error(w, "broken artifact", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", a.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.DownloadName()))
	w.Write(data)
}

func (s *HTTPServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.Artifact(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := a.ImageBytes()
	if err != nil {
		http.Error(w, "broken artifact", http.StatusInternalServerError)
		return
	}
	preview, mimeType := imgutil.Preview(data, a.MimeType, s.previewQuality)
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400, immutable")
	w.Write(preview)
}

type generateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
}

type errorView struct {
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message"`
}

type stateView struct {
	History    []domain.GeneratedArtifact `json:"history"`
	Current    *domain.GeneratedArtifact  `json:"current"`
	InProgress bool                       `json:"inProgress"`
	LastError  *errorView                 `json:"lastError"`
}

func toStateView(st session.State) stateView {
	v := stateView{
		History:    st.History,
		Current:    st.Current,
		InProgress: st.InProgress,
	}
	if v.History == nil {
		v.History = []domain.GeneratedArtifact{}
	}
	if st.LastError != nil {
		kind, _ := domain.KindOf(st.LastError)
		v.LastError = &errorView{Kind: kind, Message: st.LastError.Error()}
	}
	return v
}

func (s *HTTPServer) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateView(s.store.Snapshot()))
}

func (s *HTTPServer) handleGenerateAPI(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorView{Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorView{Message: domain.ErrEmptyPrompt.Error()})
		return
	}
	ratio, err := domain.ParseAspectRatio(req.AspectRatio)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorView{Message: err.Error()})
		return
	}

	if _, ok := s.store.Submit(r.Context(), req.Prompt, ratio); !ok {
		writeJSON(w, http.StatusConflict, errorView{Message: "a generation is already in progress"})
		return
	}
	writeJSON(w, http.StatusAccepted, toStateView(s.store.Snapshot()))
}

func (s *HTTPServer) handleSelectAPI(w http.ResponseWriter, r *http.Request) {
	if !s.store.Select(r.PathValue("id")) {
		writeJSON(w, http.StatusNotFound, errorView{Message: "artifact not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleDismissAPI(w http.ResponseWriter, r *http.Request) {
	s.store.DismissError()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
