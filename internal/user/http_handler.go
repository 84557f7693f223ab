package user

import (
	"errors"
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

// GetCurrentUser handles GET /v1/me
// @Summary Get current user
// @Description Get the authenticated user's profile document
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/me [get]
func (h *HTTPHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.UserIDFrom(r)
	if accountID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	u, err := h.service.Ensure(r.Context(), accountID, httpx.EmailFrom(r))
	if err != nil {
		h.log.Error("load user failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, u, nil)
}

// UpdateCurrentUser handles PATCH /v1/me
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdateCommand true "Profile fields"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/me [patch]
func (h *HTTPHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.UserIDFrom(r)
	if accountID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	var cmd UpdateCommand
	if err := httpx.DecodeJSON(r, &cmd); err != nil {
		httpx.BadBody(w, r, err)
		return
	}
	if details := httpx.ValidateStruct(cmd); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	u, err := h.service.Update(r.Context(), accountID, cmd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		h.log.Error("update user failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, u, nil)
}
