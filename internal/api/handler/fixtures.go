package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/marsdencc/clubdata/internal/api/respond"
	"github.com/marsdencc/clubdata/internal/cache"
	"github.com/marsdencc/clubdata/internal/fixtures"
)

const fixturesCacheKey = "fixtures"

// maxImportBytes caps uploaded fixture exports. PlayHQ season exports are a
// few hundred KB at most.
const maxImportBytes = 10 << 20

// GetFixtures serves the last imported fixture set.
// @Summary Imported fixtures
// @Tags fixtures
// @Produce json
// @Success 200 {object} fixtures.FixtureSet
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/fixtures [get]
func (h *Handler) GetFixtures(w http.ResponseWriter, r *http.Request) {
	if data, etag, ok := h.cache.Get(fixturesCacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLFixtures, true)
		return
	}

	set, ok, err := h.importer.Load(r.Context())
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "failed to read fixtures", err.Error())
		return
	}
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "no fixtures imported yet")
		return
	}

	data, err := json.Marshal(set)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "failed to encode fixtures", err.Error())
		return
	}
	etag := h.cache.Set(fixturesCacheKey, data, cache.TTLFixtures)
	respond.WriteJSON(w, data, etag, cache.TTLFixtures, false)
}

// ImportFixtures accepts a PlayHQ fixture export (multipart field "file"),
// parses it, and persists the derived set to every configured target.
// Structural CSV errors are client errors; the import only fails outright
// when no persistence target took the write.
// @Summary Import a fixture CSV export
// @Tags fixtures
// @Accept mpfd
// @Produce json
// @Param file formData file true "PlayHQ fixture export (CSV)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/fixtures/import [post]
func (h *Handler) ImportFixtures(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "missing file field", err.Error())
		return
	}
	defer file.Close()

	set, err := fixtures.ImportCSV(file, h.scraper.Logger)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "CSV parse failed", err.Error())
		return
	}

	persisted, err := h.importer.Persist(r.Context(), set)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "persistence failed", err.Error())
		return
	}

	h.cache.Invalidate(fixturesCacheKey)

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   fmt.Sprintf("Imported %d fixtures from %s", set.TotalMatches, header.Filename),
		"data":      set,
		"persisted": persisted,
	})
}
