package stats

import (
	"net/http"

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

// Get handles GET /v1/me/stats
// @Summary Reading statistics
// @Tags stats
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/me/stats [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.UserIDFrom(r)
	if accountID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	s, err := h.service.ForUser(r.Context(), accountID, httpx.EmailFrom(r))
	if err != nil {
		h.log.Error("compute stats failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, s, nil)
}
