package api

import (
	"net/http"

	"github.com/helix-study/backend/internal/domain/term"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateTermRequest struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type UpdateTermRequest struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type TermResponse struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"group_id"`
	Term        string  `json:"term"`
	Definition  string  `json:"definition"`
	MasteryCoef float64 `json:"mastery_coef"`
	TotalAns    int     `json:"total_ans"`
	CorrectAns  int     `json:"correct_ans"`
}

func termResponse(t *term.Term) TermResponse {
	return TermResponse{
		ID:          t.ID,
		GroupID:     t.GroupID,
		Term:        t.Term,
		Definition:  t.Definition,
		MasteryCoef: t.MasteryCoef,
		TotalAns:    t.TotalAns,
		CorrectAns:  t.CorrectAns,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /groups/{groupID}/terms
func (h *Handler) createTerm(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")

	var req CreateTermRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.store.GetGroup(r.Context(), groupID); h.handleStoreError(w, err, "group") {
		return
	}

	t, err := term.NewTerm(groupID, req.Term, req.Definition)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.CreateTerm(r.Context(), t); err != nil {
		h.logger.Error("failed to create term", "error", err)
		http.Error(w, "failed to create term", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, termResponse(t))
}

// GET /groups/{groupID}/terms
func (h *Handler) listTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.store.ListTermsByGroup(r.Context(), r.PathValue("groupID"))
	if h.handleStoreError(w, err, "terms") {
		return
	}

	response := make([]TermResponse, len(terms))
	for i := range terms {
		response[i] = termResponse(&terms[i])
	}
	respondJSON(w, http.StatusOK, response)
}

// PUT /terms/{termID}
func (h *Handler) updateTerm(w http.ResponseWriter, r *http.Request) {
	var req UpdateTermRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Term == "" || req.Definition == "" {
		http.Error(w, "term and definition are required", http.StatusBadRequest)
		return
	}

	t, err := h.store.GetTerm(r.Context(), r.PathValue("termID"))
	if h.handleStoreError(w, err, "term") {
		return
	}

	t.Term = req.Term
	t.Definition = req.Definition
	if err := h.store.UpdateTerm(r.Context(), t); h.handleStoreError(w, err, "term") {
		return
	}
	respondJSON(w, http.StatusOK, termResponse(t))
}

// DELETE /terms/{termID}
func (h *Handler) deleteTerm(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteTerm(r.Context(), r.PathValue("termID"))
	if h.handleStoreError(w, err, "term") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
