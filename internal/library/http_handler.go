package library

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"freader/internal/httpx"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type HTTPHandler struct {
	service *Service
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

type SaveReq struct {
	GoogleBookID string `json:"google_book_id" validate:"required,max=64"`
}

// writeError maps library errors onto the response envelope.
func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrVolumeNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "VOLUME_NOT_FOUND", "Volume not found in catalog", nil)
	case errors.Is(err, ErrAlreadySaved):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_SAVED", "Book already in library", nil)
	case errors.Is(err, ErrInvalidRating):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: "rating", Message: err.Error()}})
	default:
		h.log.Error(msg, zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.InternalError(w, r)
	}
}

// List handles GET /v1/library/books
// @Summary List saved books
// @Tags library
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/library/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	// OFFSET is computed in int and must stay within what PostgreSQL accepts.
	if page > math.MaxInt32/pageSize {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: "page", Message: "page is too large"}})
		return
	}

	books, total, err := h.service.List(r.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.writeError(w, r, err, "list books failed")
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// Save handles POST /v1/library/books
// @Summary Save a catalog volume to the library
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body SaveReq true "Volume to save"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/library/books [post]
func (h *HTTPHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	var req SaveReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadBody(w, r, err)
		return
	}
	req.GoogleBookID = strings.TrimSpace(req.GoogleBookID)
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b, err := h.service.Save(r.Context(), userID, req.GoogleBookID)
	if err != nil {
		h.writeError(w, r, err, "save book failed")
		return
	}
	httpx.JSONCreated(w, r, b)
}

// Get handles GET /v1/library/books/{id}
// @Summary Get a saved book
// @Tags library
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	b, err := h.service.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "get book failed")
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// GetByGoogleID handles GET /v1/library/volumes/{googleBookId}
// @Summary Find a saved book by catalog volume id
// @Tags library
// @Produce json
// @Security Bearer
// @Param googleBookId path string true "Catalog volume ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/volumes/{googleBookId} [get]
func (h *HTTPHandler) GetByGoogleID(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	b, err := h.service.GetByGoogleID(r.Context(), userID, r.PathValue("googleBookId"))
	if err != nil {
		h.writeError(w, r, err, "get book by volume failed")
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PATCH /v1/library/books/{id}
// @Summary Update notes, rating or reading progress
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Param request body UpdateCommand true "Changes"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/books/{id} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
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

	b, changed, err := h.service.Update(r.Context(), userID, r.PathValue("id"), cmd)
	if err != nil {
		h.writeError(w, r, err, "update book failed")
		return
	}
	httpx.JSONSuccess(w, r, b, map[string]any{"changed": changed})
}

// Delete handles DELETE /v1/library/books/{id}
// @Summary Remove a book from the library
// @Tags library
// @Security Bearer
// @Param id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.Unauthorized(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		h.writeError(w, r, err, "delete book failed")
		return
	}
	httpx.JSONNoContent(w)
}
