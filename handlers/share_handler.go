package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/catalog"
	"fitChallengeAPI/internal/observability"
	"fitChallengeAPI/services"
)

type ShareHandler struct {
	shares *services.ShareService
	logger *zap.Logger
}

func NewShareHandler(shares *services.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		shares: shares,
		logger: logger,
	}
}

// Resolve serves the challenge behind /s/{key}. Built-in catalog keys win
// over share tokens and never touch the store.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if catalog.Has(key) {
		c, err := catalog.Get(key)
		if err != nil {
			respondWithDomainError(w, h.logger, err)
			return
		}
		observability.RecordShareResolved("catalog")
		respondWithJSON(w, http.StatusOK, c)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.shares.ResolveShare(ctx, key)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			observability.RecordShareResolved("missing")
		}
		respondWithDomainError(w, h.logger, err)
		return
	}

	observability.RecordShareResolved("share")
	respondWithJSON(w, http.StatusOK, c)
}

// QRCode serves a PNG QR code for the public share URL. The optional size
// query parameter is clamped to 64..1024 pixels.
func (h *ShareHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	size := services.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "size must be a whole number")
			return
		}
		size = min(max(n, 64), 1024)
	}

	png, err := h.shares.QRCode(ctx, mux.Vars(r)["id"], size)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
