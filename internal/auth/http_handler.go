package auth

import (
	"errors"
	"net/http"
	"strings"

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

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password_strength"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /v1/auth/register
// @Summary Register an account
// @Description Create an account and its user document, then sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterReq true "Register request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/auth/register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadBody(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	sess, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Email already registered", nil)
			return
		}
		h.log.Error("register failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONCreated(w, r, sess)
}

// Login handles POST /v1/auth/login
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadBody(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	sess, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
			return
		}
		h.log.Error("login failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, sess, nil)
}

// Logout handles POST /v1/auth/logout
// @Summary Sign out
// @Description Revoke the current access token
// @Tags auth
// @Security Bearer
// @Success 204 "No Content"
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/auth/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := httpx.ClaimsFrom(r)
	if claims == nil {
		httpx.Unauthorized(w, r)
		return
	}

	if err := h.service.Logout(r.Context(), claims); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.Unauthorized(w, r)
			return
		}
		h.log.Error("logout failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONNoContent(w)
}
