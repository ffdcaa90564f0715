package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/marsdencc/clubdata/internal/api/respond"
	"github.com/marsdencc/clubdata/internal/cache"
	"github.com/marsdencc/clubdata/internal/ladder"
)

const standingsCacheKey = "standings"

// GetStandings serves the last persisted ladder. When nothing has ever been
// scraped, the fixed default table is served (not persisted) so the front
// end always has a complete ladder to render.
// @Summary Current ladder standings
// @Tags standings
// @Produce json
// @Success 200 {object} ladder.ScrapeResult
// @Router /api/v1/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	if data, etag, ok := h.cache.Get(standingsCacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLStandings, true)
		return
	}

	result, ok, err := ladder.Load(r.Context(), h.scraper.Store)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "failed to read standings", err.Error())
		return
	}
	if !ok {
		result = &ladder.ScrapeResult{
			Grade:       h.cfg.GradeLabel,
			Standings:   ladder.DefaultStandings(),
			LastUpdated: time.Now().UTC(),
			Source:      ladder.SourceFallback,
			Note:        ladder.FallbackNote,
		}
	}

	data, err := json.Marshal(result)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "failed to encode standings", err.Error())
		return
	}
	etag := h.cache.Set(standingsCacheKey, data, cache.TTLStandings)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLStandings, false)
}

// ScrapeStandings triggers a live scrape of the provider ladder page.
//
// Response contract:
//   - fresh scrape (or fallback substitution): 200 success:true
//   - fetch failed but a persisted result exists: 200 success:false with data
//   - fetch failed and nothing persisted: 500
//
// @Summary Trigger a ladder scrape
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/standings/scrape [get]
func (h *Handler) ScrapeStandings(w http.ResponseWriter, r *http.Request) {
	outcome := h.scraper.Run(r.Context())
	duration := outcome.Duration.Round(time.Millisecond).String()

	if outcome.Err != nil {
		if outcome.Result != nil {
			respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
				"success":  false,
				"message":  "Scrape failed; serving last known standings",
				"data":     outcome.Result,
				"error":    outcome.Err.Error(),
				"duration": duration,
			})
			return
		}
		respond.WriteJSONObject(w, http.StatusInternalServerError, map[string]interface{}{
			"error":    "scrape failed",
			"details":  outcome.Err.Error(),
			"hint":     "check LADDER_URL and that Chrome is installed on this host",
			"duration": duration,
		})
		return
	}

	h.cache.Invalidate(standingsCacheKey)

	message := fmt.Sprintf("Scraped %d standings", outcome.RecordsFound)
	if outcome.RecordsFound == 0 {
		message = "No rows extracted; default table substituted"
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        message,
		"data":           outcome.Result,
		"standingsCount": len(outcome.Result.Standings),
		"duration":       duration,
	})
}
