package handler

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles catalogue-related HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// GetAll handles GET /api/items requests.
func (h *CatalogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
		return
	}

	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)

	items, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err, "/", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetBySlug handles GET /api/items/{slug} requests.
func (h *CatalogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
		return
	}

	slug := strings.TrimPrefix(r.URL.Path, "/api/items/")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "MISSING_SLUG", "item slug is required", "/", h.logger)
		return
	}

	item, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, err, "/", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// queryInt parses an integer query parameter with a default value.
func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
