package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/queue"
	"github.com/DingzixuanCYEZ/CCB/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CardRequest struct {
	Question string `json:"question" example:"apple"`
	Answer   string `json:"answer" example:"苹果"`
	Note     string `json:"note,omitempty"`
}

type CreateDeckRequest struct {
	Name        string        `json:"name" example:"Fruit"`
	Subject     string        `json:"subject" example:"English"`
	ContentType string        `json:"content_type,omitempty" example:"word"`
	StudyMode   string        `json:"study_mode,omitempty" example:"en_cn"`
	Options     *deck.Options `json:"options,omitempty"`
	Cards       []CardRequest `json:"cards,omitempty"`
}

func (r *CreateDeckRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !deck.Subject(r.Subject).Valid() {
		return errors.New("invalid subject: must be English or Chinese")
	}
	ct := deck.ContentType(r.ContentType)
	if r.ContentType != "" && ct != deck.Word && ct != deck.PhraseSentence {
		return errors.New("invalid content_type: must be word or phrase")
	}
	sm := deck.StudyMode(r.StudyMode)
	if r.StudyMode != "" && sm != deck.ChineseToEnglish && sm != deck.EnglishToChinese {
		return errors.New("invalid study_mode: must be cn_en or en_cn")
	}
	return validateCards(r.Cards)
}

type AddCardsRequest struct {
	Cards []CardRequest `json:"cards"`
}

func (r *AddCardsRequest) Validate() error {
	if len(r.Cards) == 0 {
		return errors.New("cards are required")
	}
	return validateCards(r.Cards)
}

func validateCards(cards []CardRequest) error {
	for _, c := range cards {
		if c.Question == "" {
			return errors.New("every card needs a question")
		}
	}
	return nil
}

type CardResponse struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Note     string  `json:"note,omitempty"`
	Label    string  `json:"label" example:"C3"`
	Mastery  float64 `json:"mastery" example:"66.4"`
	Wrongs   float64 `json:"total_wrong"`
	Reviews  int     `json:"total_reviews"`
}

type DeckResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Subject     deck.Subject      `json:"subject"`
	ContentType deck.ContentType  `json:"content_type"`
	StudyMode   deck.StudyMode    `json:"study_mode"`
	Options     deck.Options      `json:"options"`
	Mastery     float64           `json:"mastery"`
	WordCount   int               `json:"word_count"`
	Stats       deck.Stats        `json:"stats"`
	Queue       queue.Queue       `json:"queue"`
	Cards       []CardResponse    `json:"cards"`
	History     []deck.SessionLog `json:"history,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func toCardInputs(cards []CardRequest) []service.CardInput {
	out := make([]service.CardInput, len(cards))
	for i, c := range cards {
		out[i] = service.CardInput{Question: c.Question, Answer: c.Answer, Note: c.Note}
	}
	return out
}

func toCardResponse(c card.Card) CardResponse {
	return CardResponse{
		ID:       c.ID,
		Question: c.Question,
		Answer:   c.Answer,
		Note:     c.Note,
		Label:    c.Label(),
		Mastery:  c.MasteryValue(),
		Wrongs:   c.TotalWrong,
		Reviews:  c.TotalReviews,
	}
}

func toDeckResponse(d *deck.Deck) DeckResponse {
	cards := make([]CardResponse, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = toCardResponse(c)
	}
	return DeckResponse{
		ID:          d.ID,
		Name:        d.Name,
		Subject:     d.Subject,
		ContentType: d.ContentType,
		StudyMode:   d.StudyMode,
		Options:     d.Opts(),
		Mastery:     d.AggregateMastery(),
		WordCount:   d.WordCount(),
		Stats:       d.Stats,
		Queue:       d.Queue,
		Cards:       cards,
		History:     d.History,
		CreatedAt:   d.CreatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createDeck creates a deck with its initial cards.
// @Summary      Create a deck
// @Description  Create a deck. Cards are queued in the order given.
// @Tags         Decks
// @Accept       json
// @Produce      json
// @Param        body  body      CreateDeckRequest  true  "Deck to create"
// @Success      201   {object}  DeckResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /decks [post]
func (h *Handler) createDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.svc.CreateDeck(r.Context(), service.CreateDeckInput{
		Name:        req.Name,
		Subject:     deck.Subject(req.Subject),
		ContentType: deck.ContentType(req.ContentType),
		StudyMode:   deck.StudyMode(req.StudyMode),
		Options:     req.Options,
		Cards:       toCardInputs(req.Cards),
	})
	if h.handleSessionError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toDeckResponse(d))
}

// listDecks lists every readable deck.
// @Summary      List decks
// @Tags         Decks
// @Produce      json
// @Success      200  {array}   service.DeckSummary
// @Failure      500  {object}  map[string]string
// @Router       /decks [get]
func (h *Handler) listDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.svc.ListDecks(r.Context())
	if h.handleStoreError(w, err, "deck") {
		return
	}
	respondJSON(w, http.StatusOK, decks)
}

// getDeck returns a deck with its cards, queue and history.
// @Summary      Get a deck
// @Tags         Decks
// @Produce      json
// @Param        deckID  path      string  true  "Deck ID"
// @Success      200     {object}  DeckResponse
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /decks/{deckID} [get]
func (h *Handler) getDeck(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDeck(r.Context(), r.PathValue("deckID"))
	if h.handleStoreError(w, err, "deck") {
		return
	}
	respondJSON(w, http.StatusOK, toDeckResponse(d))
}

// addCards appends cards to a deck.
// @Summary      Add cards
// @Description  Append cards to the tail of the deck's review queue.
// @Tags         Decks
// @Accept       json
// @Produce      json
// @Param        deckID  path      string           true  "Deck ID"
// @Param        body    body      AddCardsRequest  true  "Cards to add"
// @Success      200     {object}  DeckResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /decks/{deckID}/cards [post]
func (h *Handler) addCards(w http.ResponseWriter, r *http.Request) {
	var req AddCardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	d, err := h.svc.AddCards(r.Context(), r.PathValue("deckID"), toCardInputs(req.Cards))
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toDeckResponse(d))
}
