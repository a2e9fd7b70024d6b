package api

import (
	"net/http"

	"github.com/helix-study/backend/internal/domain/term"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateGroupRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type UpdateGroupRequest struct {
	Name string `json:"name"`
}

type GroupResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

func groupResponse(g *term.TermGroup) GroupResponse {
	return GroupResponse{ID: g.ID, UserID: g.UserID, Name: g.Name}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /groups
func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.store.GetUser(r.Context(), req.UserID); h.handleStoreError(w, err, "user") {
		return
	}

	g, err := term.NewGroup(req.UserID, req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.CreateGroup(r.Context(), g); err != nil {
		h.logger.Error("failed to create group", "error", err)
		http.Error(w, "failed to create group", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, groupResponse(g))
}

// GET /users/{userID}/groups
func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroupsByUser(r.Context(), r.PathValue("userID"))
	if h.handleStoreError(w, err, "groups") {
		return
	}

	response := make([]GroupResponse, len(groups))
	for i, g := range groups {
		response[i] = groupResponse(g)
	}
	respondJSON(w, http.StatusOK, response)
}

// GET /groups/{groupID}
func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.GetGroup(r.Context(), r.PathValue("groupID"))
	if h.handleStoreError(w, err, "group") {
		return
	}
	respondJSON(w, http.StatusOK, groupResponse(g))
}

// PUT /groups/{groupID}
func (h *Handler) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req UpdateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	g, err := h.store.GetGroup(r.Context(), r.PathValue("groupID"))
	if h.handleStoreError(w, err, "group") {
		return
	}

	g.Name = req.Name
	if err := h.store.UpdateGroup(r.Context(), g); h.handleStoreError(w, err, "group") {
		return
	}
	respondJSON(w, http.StatusOK, groupResponse(g))
}

// DELETE /groups/{groupID}
func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteGroup(r.Context(), r.PathValue("groupID"))
	if h.handleStoreError(w, err, "group") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
