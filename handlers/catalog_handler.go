package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fitChallengeAPI/internal/catalog"
)

type CatalogHandler struct {
	baseURL string
	logger  *zap.Logger
}

func NewCatalogHandler(baseURL string, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{baseURL: baseURL, logger: logger}
}

type catalogEntry struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	keys := catalog.Keys()
	entries := make([]catalogEntry, 0, len(keys))
	for _, key := range keys {
		c, err := catalog.Get(key)
		if err != nil {
			respondWithDomainError(w, h.logger, err)
			return
		}
		entries = append(entries, catalogEntry{
			Key:     key,
			Name:    c.Name,
			Summary: c.Summary,
			URL:     h.baseURL + "/s/" + key,
		})
	}
	respondWithJSON(w, http.StatusOK, entries)
}
