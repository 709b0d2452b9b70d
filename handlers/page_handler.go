package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"fitChallengeAPI/internal/session"
	"fitChallengeAPI/internal/views"
)

type PageHandler struct {
	sessions *session.Manager
	renderer *views.Renderer
	logger   *zap.Logger
}

func NewPageHandler(sessions *session.Manager, renderer *views.Renderer, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, h.logger, func(w io.Writer) error { return h.renderer.Index(w) })
}

func (h *PageHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.sessions.Load(ctx, r)
	if err != nil {
		h.logger.Error("load session", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error connecting to session store")
		return
	}
	if err := h.sessions.Destroy(ctx, w, sess); err != nil {
		h.logger.Error("destroy session", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error connecting to session store")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *PageHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}
