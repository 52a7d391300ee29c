package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/user"
)

// Pagination limits for the list endpoint.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserHandler serves the users resource.
type UserHandler struct {
	store     Store
	validator *requestValidator
	logger    logger.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(store Store, log logger.Logger) *UserHandler {
	return &UserHandler{
		store:     store,
		validator: newRequestValidator(),
		logger:    log,
	}
}

// List handles GET /users?page=&limit=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	limit := DefaultLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	users, total, err := h.store.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, user.PaginatedResponse[user.User]{
		Data:       users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	})
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, found)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	created, err := h.store.Create(r.Context(), req.data())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /users/{id} as a full replace.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if req.ID != "" && req.ID != id {
		respondError(w, http.StatusBadRequest, "body id does not match path")
		return
	}

	updated, err := h.store.Replace(r.Context(), id, req.data())
	if err != nil {
		h.respondStoreError(w, err, "failed to update user")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) decode(w http.ResponseWriter, r *http.Request) (userRequest, bool) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn(r.Context(), "failed to parse JSON", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	req.normalize()
	if err := h.validator.check(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

func (h *UserHandler) respondStoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondError(w, http.StatusInternalServerError, msg)
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func totalPages(total, limit int) int {
	if total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
