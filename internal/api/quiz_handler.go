package api

import (
	"errors"
	"net/http"

	"github.com/helix-study/backend/internal/domain/quiz"
	"github.com/helix-study/backend/internal/id"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartQuizRequest struct {
	Username string `json:"username"`
	GroupID  string `json:"group_id"`
	Mode     string `json:"mode"`
}

type StartQuizResponse struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	Remaining int    `json:"remaining"`
}

// QuestionResponse is the client-facing view of a question. The answer
// key stays on the server until the answer is submitted.
type QuestionResponse struct {
	Mode string `json:"mode"`

	// write mode
	Definition string `json:"definition,omitempty"`

	// choice mode
	Term    string   `json:"term,omitempty"`
	Options []string `json:"options,omitempty"`

	// match mode
	Terms       []string `json:"terms,omitempty"`
	Definitions []string `json:"definitions,omitempty"`
}

type SubmitAnswerRequest struct {
	Text        string `json:"text,omitempty"`
	ChoiceIndex int    `json:"choice_index,omitempty"`
	Matches     []int  `json:"matches,omitempty"`
}

type SubmitAnswerResponse struct {
	Earned       int    `json:"earned"`
	SessionScore int    `json:"session_score"`
	Remaining    int    `json:"remaining"`
	CorrectTerm  string `json:"correct_term,omitempty"`
	CorrectIndex *int   `json:"correct_index,omitempty"`
	AnswerKey    []int  `json:"answer_key,omitempty"`
}

type CompleteQuizResponse struct {
	SessionScore int `json:"session_score"`
	TotalScore   int `json:"total_score"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /quiz
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode, err := quiz.NewGameMode(quiz.Mode(req.Mode))
	if err != nil {
		http.Error(w, "unknown game mode", http.StatusBadRequest)
		return
	}

	group, err := h.store.GetGroup(r.Context(), req.GroupID)
	if h.handleStoreError(w, err, "group") {
		return
	}

	session := quiz.NewSession(h.store)
	if err := session.SetActiveUser(r.Context(), req.Username); h.handleStoreError(w, err, "user") {
		return
	}
	session.SetTermGroup(group)
	session.SetGameMode(mode)

	if err := session.Start(r.Context()); err != nil {
		if errors.Is(err, quiz.ErrEmptyGroup) {
			http.Error(w, "group has no terms", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to start quiz", "error", err)
		http.Error(w, "failed to start quiz", http.StatusInternalServerError)
		return
	}

	quizID := id.New()
	h.mu.Lock()
	h.quizzes[quizID] = &quizState{session: session}
	h.mu.Unlock()

	respondJSON(w, http.StatusCreated, StartQuizResponse{
		ID:        quizID,
		Mode:      req.Mode,
		Remaining: mode.Remaining(),
	})
}

// GET /quiz/{quizID}/question
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	qs, ok := h.getQuiz(r.PathValue("quizID"))
	if !ok {
		http.Error(w, "quiz not found", http.StatusNotFound)
		return
	}

	q, err := qs.session.NextQuestion()
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrPoolExhausted):
			http.Error(w, "no questions left", http.StatusConflict)
		case errors.Is(err, quiz.ErrInsufficientPool):
			http.Error(w, "not enough terms for this mode", http.StatusBadRequest)
		default:
			h.logger.Error("failed to build question", "error", err)
			http.Error(w, "failed to build question", http.StatusInternalServerError)
		}
		return
	}

	h.mu.Lock()
	qs.current = &q
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, sanitizeQuestion(q))
}

// POST /quiz/{quizID}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	qs, ok := h.getQuiz(r.PathValue("quizID"))
	if !ok {
		http.Error(w, "quiz not found", http.StatusNotFound)
		return
	}

	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.mu.Lock()
	current := qs.current
	h.mu.Unlock()

	if current == nil {
		http.Error(w, "no question awaiting an answer", http.StatusConflict)
		return
	}

	answer := quiz.Answer{Text: req.Text, ChoiceIndex: req.ChoiceIndex}
	if current.Mode == quiz.ModeMatch {
		// A partial answer must not be padded out with zero indexes.
		if len(req.Matches) != len(answer.Matches) {
			http.Error(w, "matching answers must cover all four pairs", http.StatusBadRequest)
			return
		}
		copy(answer.Matches[:], req.Matches)
	}

	h.mu.Lock()
	claimed := qs.current == current
	if claimed {
		qs.current = nil
	}
	h.mu.Unlock()
	if !claimed {
		http.Error(w, "no question awaiting an answer", http.StatusConflict)
		return
	}

	earned, err := qs.session.SubmitAnswer(r.Context(), *current, answer)
	if err != nil {
		h.logger.Error("failed to grade answer", "error", err)
		http.Error(w, "failed to grade answer", http.StatusInternalServerError)
		return
	}

	resp := SubmitAnswerResponse{
		Earned:       earned,
		SessionScore: qs.session.Score(),
		Remaining:    qs.session.GameMode().Remaining(),
	}
	switch current.Mode {
	case quiz.ModeWrite:
		resp.CorrectTerm = current.Write.Term
	case quiz.ModeChoice:
		idx := current.Choice.CorrectIndex
		resp.CorrectIndex = &idx
	case quiz.ModeMatch:
		resp.AnswerKey = current.Match.AnswerKey[:]
	}

	respondJSON(w, http.StatusOK, resp)
}

// POST /quiz/{quizID}/complete
func (h *Handler) completeQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizID")

	qs, ok := h.getQuiz(quizID)
	if !ok {
		http.Error(w, "quiz not found", http.StatusNotFound)
		return
	}

	sessionScore := qs.session.Score()
	total, err := qs.session.Finish(r.Context())
	if err != nil {
		h.logger.Error("failed to complete quiz", "error", err)
		http.Error(w, "failed to complete quiz", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	delete(h.quizzes, quizID)
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, CompleteQuizResponse{
		SessionScore: sessionScore,
		TotalScore:   total,
	})
}

func sanitizeQuestion(q quiz.Question) QuestionResponse {
	resp := QuestionResponse{Mode: string(q.Mode)}

	switch q.Mode {
	case quiz.ModeWrite:
		resp.Definition = q.Write.Definition
	case quiz.ModeChoice:
		resp.Term = q.Choice.Term
		resp.Options = q.Choice.Options[:]
	case quiz.ModeMatch:
		for _, pair := range q.Match.Terms {
			resp.Terms = append(resp.Terms, pair.Term)
		}
		resp.Definitions = q.Match.Definitions[:]
	}

	return resp
}
