package api

import "net/http"

// RegisterRoutes mounts every API route on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Decks
	mux.HandleFunc("POST /decks", h.createDeck)
	mux.HandleFunc("GET /decks", h.listDecks)
	mux.HandleFunc("GET /decks/{deckID}", h.getDeck)
	mux.HandleFunc("POST /decks/{deckID}/cards", h.addCards)

	// Study
	mux.HandleFunc("POST /decks/{deckID}/study", h.startStudy)
	mux.HandleFunc("POST /session/reveal", h.reveal)
	mux.HandleFunc("POST /session/answer", h.answer)

	// Exam
	mux.HandleFunc("POST /decks/{deckID}/exam", h.startExam)
	mux.HandleFunc("POST /session/remember", h.remember)
	mux.HandleFunc("POST /session/forgot", h.forgot)
	mux.HandleFunc("POST /session/grade", h.grade)

	// Either mode
	mux.HandleFunc("GET /session", h.currentSession)
	mux.HandleFunc("POST /session/next", h.next)
	mux.HandleFunc("POST /session/finish", h.finish)

	// Settings & metrics
	mux.HandleFunc("GET /settings", h.getSettings)
	mux.HandleFunc("PUT /settings", h.updateSettings)
	mux.HandleFunc("GET /profiles", h.listProfiles)
	mux.HandleFunc("GET /stats", h.getStats)
}
