package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"fitChallengeAPI/internal/types/challenge"
	"fitChallengeAPI/internal/views"
	"fitChallengeAPI/middleware"
	"fitChallengeAPI/services"
)

const maxFormBytes = 64 << 10

type ChallengeHandler struct {
	challenges *services.ChallengeService
	shares     *services.ShareService
	workflow   *services.CreationWorkflow
	renderer   *views.Renderer
	decoder    *schema.Decoder
	logger     *zap.Logger
}

func NewChallengeHandler(challenges *services.ChallengeService, shares *services.ShareService, workflow *services.CreationWorkflow, renderer *views.Renderer, logger *zap.Logger) *ChallengeHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &ChallengeHandler{
		challenges: challenges,
		shares:     shares,
		workflow:   workflow,
		renderer:   renderer,
		decoder:    decoder,
		logger:     logger,
	}
}

func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "missing session identity")
		return
	}

	list, err := h.challenges.ListChallengesByAuthor(ctx, userID)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	if wantsJSON(r) {
		respondWithJSON(w, http.StatusOK, list)
		return
	}
	writeHTML(w, h.logger, func(w io.Writer) error { return h.renderer.Challenges(w, list) })
}

func (h *ChallengeHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, h.logger, func(w io.Writer) error { return h.renderer.Create(w) })
}

func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "missing session identity")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "must provide challenge definition")
		return
	}

	var form challenge.CreateChallengeForm
	if err := h.decoder.Decode(&form, r.PostForm); err != nil {
		respondWithError(w, http.StatusBadRequest, "must provide challenge definition")
		return
	}

	c, err := h.workflow.Create(ctx, userID, form)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	if wantsJSON(r) {
		w.Header().Set("Location", "/me/challenges/"+c.ID)
		respondWithJSON(w, http.StatusCreated, c)
		return
	}
	http.Redirect(w, r, "/me/challenges/"+c.ID, http.StatusSeeOther)
}

func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "missing session identity")
		return
	}

	c, err := h.challenges.GetChallengeForAuthor(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	if wantsJSON(r) {
		respondWithJSON(w, http.StatusOK, c)
		return
	}

	shareURL := ""
	if c.ShareID != "" {
		shareURL = h.shares.ShareURL(c.ShareID)
	}
	writeHTML(w, h.logger, func(w io.Writer) error { return h.renderer.Challenge(w, *c, shareURL) })
}

// Delete removes any challenge by id. Ownership is not checked and a
// missing challenge is not an error.
func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.challenges.DeleteChallenge(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	if r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/me/challenges", http.StatusFound)
}
