package api

import "net/http"

// RegisterRoutes attaches all handler methods to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Users
	mux.HandleFunc("POST /users", h.createUser)
	mux.HandleFunc("GET /users", h.listUsers)
	mux.HandleFunc("DELETE /users/{userID}", h.deleteUser)
	mux.HandleFunc("GET /users/{userID}/score", h.getUserScore)
	mux.HandleFunc("GET /users/{userID}/groups", h.listGroups)

	// Term groups
	mux.HandleFunc("POST /groups", h.createGroup)
	mux.HandleFunc("GET /groups/{groupID}", h.getGroup)
	mux.HandleFunc("PUT /groups/{groupID}", h.updateGroup)
	mux.HandleFunc("DELETE /groups/{groupID}", h.deleteGroup)

	// Terms
	mux.HandleFunc("POST /groups/{groupID}/terms", h.createTerm)
	mux.HandleFunc("GET /groups/{groupID}/terms", h.listTerms)
	mux.HandleFunc("PUT /terms/{termID}", h.updateTerm)
	mux.HandleFunc("DELETE /terms/{termID}", h.deleteTerm)

	// Deck files
	mux.HandleFunc("POST /groups/{groupID}/import", h.importDeck)
	mux.HandleFunc("GET /groups/{groupID}/export", h.exportDeck)

	// Quiz sessions
	mux.HandleFunc("POST /quiz", h.startQuiz)
	mux.HandleFunc("GET /quiz/{quizID}/question", h.nextQuestion)
	mux.HandleFunc("POST /quiz/{quizID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /quiz/{quizID}/complete", h.completeQuiz)
}
