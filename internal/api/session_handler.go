package api

import (
	"errors"
	"net/http"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/service"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
)

// ── Request / Response types ────────────────────────────────────────────────

type AnswerRequest struct {
	Verdict card.Verdict `json:"verdict" swaggertype:"string" enums:"correct,wrong,half,watch"`
}

func (r *AnswerRequest) Validate() error {
	if !r.Verdict.Scored() && r.Verdict != card.Watch {
		return errors.New("verdict is required: correct, wrong, half or watch")
	}
	return nil
}

type StartExamRequest struct {
	Count  *int           `json:"count,omitempty" example:"20"`
	Filter session.Filter `json:"filter"`
}

func (r *StartExamRequest) Validate() error {
	if r.Count != nil && *r.Count < 0 {
		return errors.New("count must not be negative")
	}
	f := r.Filter
	if f.MinWrong != nil && f.MaxWrong != nil && *f.MinWrong > *f.MaxWrong {
		return errors.New("min_wrong is greater than max_wrong")
	}
	return nil
}

type GradeRequest struct {
	Correct *bool `json:"correct"`
}

func (r *GradeRequest) Validate() error {
	if r.Correct == nil {
		return errors.New("correct is required")
	}
	return nil
}

type FinishRequest struct {
	Reorder session.Reorder `json:"reorder"`
}

func (r *FinishRequest) Validate() error {
	switch r.Reorder.Mode {
	case "", session.ReorderNone, session.ReorderTop:
	case session.ReorderInterleave:
		if r.Reorder.Ratio < 1 {
			return errors.New("interleave needs a ratio of at least 1")
		}
	default:
		return errors.New("invalid reorder mode: must be none, top or interleave")
	}
	return nil
}

type FinishResponse struct {
	Recorded bool             `json:"recorded"`
	Log      *deck.SessionLog `json:"log,omitempty"`
}

// ── Lifecycle ───────────────────────────────────────────────────────────────

// startStudy opens a study session.
// @Summary      Start studying a deck
// @Description  Opens a study session on the deck's review queue. A running session is finished first.
// @Tags         Sessions
// @Produce      json
// @Param        deckID  path      string  true  "Deck ID"
// @Success      200     {object}  session.View
// @Failure      404     {object}  map[string]string
// @Router       /decks/{deckID}/study [post]
func (h *Handler) startStudy(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.StartStudy(r.Context(), r.PathValue("deckID"))
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// startExam samples an exam.
// @Summary      Start an exam
// @Description  Samples cards without replacement. Exam answers update card stats but never move cards.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        deckID  path      string            true  "Deck ID"
// @Param        body    body      StartExamRequest  true  "Sample size and filter"
// @Success      200     {object}  session.View
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /decks/{deckID}/exam [post]
func (h *Handler) startExam(w http.ResponseWriter, r *http.Request) {
	var req StartExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	v, err := h.svc.StartExam(r.Context(), r.PathValue("deckID"), service.ExamInput{
		Count:  req.Count,
		Filter: req.Filter,
	})
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// currentSession returns the active session.
// @Summary      Current session
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      404  {object}  map[string]string  "no active session"
// @Router       /session [get]
func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Current()
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// finish ends the active session and records its log.
// @Summary      Finish the session
// @Description  Flushes the session log and aggregate metrics. For exams, cards answered wrong can be moved in the queue.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      FinishRequest  false  "Exam reorder"
// @Success      200   {object}  FinishResponse
// @Failure      404   {object}  map[string]string
// @Router       /session/finish [post]
func (h *Handler) finish(w http.ResponseWriter, r *http.Request) {
	var req FinishRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req) {
		return
	}
	log, err := h.svc.Finish(r.Context(), req.Reorder)
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, FinishResponse{Recorded: log != nil, Log: log})
}

// next moves on to the following card or question.
// @Summary      Next card
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      409  {object}  map[string]string
// @Failure      429  {object}  map[string]string  "input ignored right after a timeout"
// @Router       /session/next [post]
func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Next(r.Context())
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// ── Study ───────────────────────────────────────────────────────────────────

// reveal shows the answer of the current card.
// @Summary      Reveal the answer
// @Tags         Study
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      409  {object}  map[string]string
// @Router       /session/reveal [post]
func (h *Handler) reveal(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Reveal(r.Context())
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// answer grades the current card.
// @Summary      Answer the current card
// @Description  Wrong may be given before revealing. Half needs allow_half in the settings.
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        body  body      AnswerRequest  true  "Verdict"
// @Success      200   {object}  session.View
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /session/answer [post]
func (h *Handler) answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	v, err := h.svc.Answer(r.Context(), req.Verdict)
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// ── Exam ────────────────────────────────────────────────────────────────────

// remember reveals the answer for self-grading.
// @Summary      I remember
// @Tags         Exam
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      409  {object}  map[string]string
// @Router       /session/remember [post]
func (h *Handler) remember(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Remember(r.Context())
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// forgot records the question as wrong.
// @Summary      I forgot
// @Tags         Exam
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      409  {object}  map[string]string
// @Router       /session/forgot [post]
func (h *Handler) forgot(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Forgot(r.Context())
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// grade records the self-assessment after remember.
// @Summary      Grade a remembered question
// @Tags         Exam
// @Accept       json
// @Produce      json
// @Param        body  body      GradeRequest  true  "Self-assessment"
// @Success      200   {object}  session.View
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /session/grade [post]
func (h *Handler) grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	v, err := h.svc.Grade(r.Context(), *req.Correct)
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, v)
}
