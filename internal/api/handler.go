package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/helix-study/backend/internal/domain/quiz"
	"github.com/helix-study/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of
// relying on package-level globals, every handler method receives its
// dependencies through this struct.
type Handler struct {
	store  store.Store
	logger *slog.Logger

	// Active quiz sessions live in memory only; each one is owned by a
	// single client and dropped on completion.
	mu      sync.Mutex
	quizzes map[string]*quizState
}

// quizState pairs a session with the question currently awaiting an
// answer. The raw question never leaves the server: responses are
// sanitized so the answer key stays here.
type quizState struct {
	session *quiz.Session
	current *quiz.Question
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:   s,
		logger:  logger,
		quizzes: make(map[string]*quizState),
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
// Returns false if the caller should bail out.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the
// appropriate HTTP response. Returns true if an error was handled
// (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, entity+" not found", http.StatusNotFound)
		return true
	}
	if errors.Is(err, store.ErrMissingID) {
		http.Error(w, entity+" id is required", http.StatusBadRequest)
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	http.Error(w, "internal error", http.StatusInternalServerError)
	return true
}

func (h *Handler) getQuiz(id string) (*quizState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	qs, ok := h.quizzes[id]
	return qs, ok
}
