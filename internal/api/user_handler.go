package api

import (
	"net/http"

	"github.com/helix-study/backend/internal/domain/term"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string `json:"username"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type UserScoreResponse struct {
	UserID string `json:"user_id"`
	Total  int    `json:"total"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /users
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := term.NewUser(req.Username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		h.logger.Error("failed to create user", "error", err)
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{ID: u.ID, Username: u.Username})
}

// GET /users
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if h.handleStoreError(w, err, "users") {
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = UserResponse{ID: u.ID, Username: u.Username}
	}
	respondJSON(w, http.StatusOK, response)
}

// DELETE /users/{userID}
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteUser(r.Context(), r.PathValue("userID"))
	if h.handleStoreError(w, err, "user") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /users/{userID}/score
func (h *Handler) getUserScore(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	if _, err := h.store.GetUser(r.Context(), userID); h.handleStoreError(w, err, "user") {
		return
	}

	total, err := h.store.TotalPointsByUser(r.Context(), userID)
	if h.handleStoreError(w, err, "points") {
		return
	}

	respondJSON(w, http.StatusOK, UserScoreResponse{UserID: userID, Total: total})
}
