package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"freader/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// Search handles GET /v1/catalog/search
// @Summary Search the book catalog
// @Tags catalog
// @Produce json
// @Param q query string true "Search terms"
// @Param max_results query int false "Result count (1-40)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/catalog/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	maxResults, _ := strconv.Atoi(query.Get("max_results"))

	volumes, total, err := h.service.Search(r.Context(), query.Get("q"), maxResults)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
				[]httpx.ErrorDetail{{Field: "q", Message: "q is required"}})
			return
		}
		h.log.Error("catalog search failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Book catalog unavailable", nil)
		return
	}

	rows := make([]Row, 0, len(volumes))
	for _, v := range volumes {
		rows = append(rows, ToRow(v))
	}
	httpx.JSONSuccess(w, r, rows, map[string]any{
		"total_items": total,
		"count":       len(rows),
	})
}

// GetVolume handles GET /v1/catalog/volumes/{id}
// @Summary Get volume details
// @Tags catalog
// @Produce json
// @Param id path string true "Google Books volume id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/catalog/volumes/{id} [get]
func (h *HTTPHandler) GetVolume(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GetVolume(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Volume not found", nil)
			return
		}
		h.log.Error("catalog volume failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Book catalog unavailable", nil)
		return
	}
	httpx.JSONSuccess(w, r, ToDetails(*v), nil)
}
