package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DingzixuanCYEZ/CCB/internal/api"
	"github.com/DingzixuanCYEZ/CCB/internal/service"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.NewStudyService(context.Background(), store.NewMemory(), logger)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	t.Cleanup(svc.Close)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(svc, logger))
	return api.Logging(logger)(api.CORS(mux))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		buf = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		buf = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func createDeck(t *testing.T, h http.Handler, n int) api.DeckResponse {
	t.Helper()
	req := api.CreateDeckRequest{Name: "Fruit", Subject: "English", ContentType: "word", StudyMode: "en_cn"}
	words := []string{"apple", "pear", "plum", "fig", "date", "lime"}
	for i := 0; i < n; i++ {
		req.Cards = append(req.Cards, api.CardRequest{Question: words[i], Answer: "fruit"})
	}
	rec := do(t, h, http.MethodPost, "/decks", req)
	expectStatus(t, rec, http.StatusCreated)
	return decode[api.DeckResponse](t, rec)
}

func TestDecks(t *testing.T) {
	h := newServer(t)
	d := createDeck(t, h, 3)
	if len(d.Cards) != 3 || d.Queue.Len() != 3 || d.WordCount != 3 {
		t.Errorf("unexpected deck %+v", d)
	}

	rec := do(t, h, http.MethodGet, "/decks", nil)
	expectStatus(t, rec, http.StatusOK)
	if list := decode[[]service.DeckSummary](t, rec); len(list) != 1 || list[0].CardCount != 3 {
		t.Errorf("unexpected list %+v", list)
	}

	expectStatus(t, do(t, h, http.MethodGet, "/decks/"+d.ID, nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodGet, "/decks/missing", nil), http.StatusNotFound)

	rec = do(t, h, http.MethodPost, "/decks/"+d.ID+"/cards", api.AddCardsRequest{Cards: []api.CardRequest{{Question: "kiwi", Answer: "fruit"}}})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[api.DeckResponse](t, rec); len(got.Cards) != 4 {
		t.Errorf("expected 4 cards, got %d", len(got.Cards))
	}
}

func TestCreateDeck_Validation(t *testing.T) {
	h := newServer(t)
	tests := []struct {
		name string
		body any
	}{
		{"missing name", api.CreateDeckRequest{Subject: "English"}},
		{"bad subject", api.CreateDeckRequest{Name: "x", Subject: "French"}},
		{"bad study mode", api.CreateDeckRequest{Name: "x", Subject: "English", StudyMode: "fr_en"}},
		{"empty question", api.CreateDeckRequest{Name: "x", Subject: "English", Cards: []api.CardRequest{{Answer: "a"}}}},
		{"malformed", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, do(t, h, http.MethodPost, "/decks", tt.body), http.StatusBadRequest)
		})
	}
}

func TestStudySession(t *testing.T) {
	h := newServer(t)
	d := createDeck(t, h, 4)

	expectStatus(t, do(t, h, http.MethodGet, "/session", nil), http.StatusNotFound)

	rec := do(t, h, http.MethodPost, "/decks/"+d.ID+"/study", nil)
	expectStatus(t, rec, http.StatusOK)
	if v := decode[session.View](t, rec); v.State != session.Hidden || v.Answer != "" {
		t.Fatalf("unexpected start view %+v", v)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/session/answer", `{"verdict":"correct"}`), http.StatusConflict)
	expectStatus(t, do(t, h, http.MethodPost, "/session/answer", `{"verdict":"maybe"}`), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodPost, "/session/remember", nil), http.StatusConflict)

	expectStatus(t, do(t, h, http.MethodPost, "/session/reveal", nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPost, "/session/answer", `{"verdict":"half"}`), http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/session/answer", `{"verdict":"correct"}`)
	expectStatus(t, rec, http.StatusOK)
	v := decode[session.View](t, rec)
	if v.State != session.Reviewed || v.Feedback == nil || v.Feedback.NewLabel != "C3" {
		t.Errorf("unexpected answer view %+v", v)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/session/next", nil), http.StatusOK)

	rec = do(t, h, http.MethodPost, "/session/finish", nil)
	expectStatus(t, rec, http.StatusOK)
	if res := decode[api.FinishResponse](t, rec); !res.Recorded || res.Log.ReviewCount != 1 {
		t.Errorf("unexpected finish %+v", res)
	}
	expectStatus(t, do(t, h, http.MethodPost, "/session/finish", nil), http.StatusNotFound)

	rec = do(t, h, http.MethodGet, "/stats", nil)
	expectStatus(t, rec, http.StatusOK)
	var stats []map[string]any
	json.Unmarshal(rec.Body.Bytes(), &stats)
	if len(stats) != 2 || stats[0]["proficiency"] != float64(1) {
		t.Errorf("unexpected stats %s", rec.Body.String())
	}
}

func TestExamSession(t *testing.T) {
	h := newServer(t)
	d := createDeck(t, h, 5)

	expectStatus(t, do(t, h, http.MethodPost, "/decks/"+d.ID+"/exam", `{"count": -1}`), http.StatusBadRequest)

	rec := do(t, h, http.MethodPost, "/decks/"+d.ID+"/exam", `{"count": 2}`)
	expectStatus(t, rec, http.StatusOK)
	if v := decode[session.View](t, rec); v.State != session.Question || v.Total != 2 {
		t.Fatalf("unexpected exam view %+v", v)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/session/reveal", nil), http.StatusConflict)
	expectStatus(t, do(t, h, http.MethodPost, "/session/remember", nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPost, "/session/grade", `{}`), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodPost, "/session/grade", `{"correct": true}`), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPost, "/session/next", nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPost, "/session/forgot", nil), http.StatusOK)

	rec = do(t, h, http.MethodPost, "/session/next", nil)
	expectStatus(t, rec, http.StatusOK)
	if v := decode[session.View](t, rec); v.State != session.Finished {
		t.Fatalf("expected finished, got %s", v.State)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/session/finish", `{"reorder": {"mode": "sideways"}}`), http.StatusBadRequest)
	rec = do(t, h, http.MethodPost, "/session/finish", `{"reorder": {"mode": "top"}}`)
	expectStatus(t, rec, http.StatusOK)
	res := decode[api.FinishResponse](t, rec)
	if len(res.Log.ExamResults) != 2 || res.Log.ExamResults[0].Correct {
		t.Errorf("unexpected exam results %+v", res.Log.ExamResults)
	}

	rec = do(t, h, http.MethodGet, "/decks/"+d.ID, nil)
	got := decode[api.DeckResponse](t, rec)
	if head, _ := got.Queue.Head(); head != res.Log.ExamResults[0].CardID {
		t.Errorf("expected the forgotten card at the queue head, got %s", head)
	}
}

func TestSettings(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPut, "/settings", `{"reward_profile": 4, "overflow": "nowhere"}`)
	expectStatus(t, rec, http.StatusOK)
	res := decode[api.SettingsResponse](t, rec)
	if res.Settings.RewardProfile != 4 || len(res.Warnings) != 1 {
		t.Errorf("unexpected settings %+v", res)
	}

	rec = do(t, h, http.MethodGet, "/settings", nil)
	if got := decode[api.SettingsResponse](t, rec); got.Settings.RewardProfile != 4 {
		t.Errorf("expected the update to stick, got %+v", got.Settings)
	}

	rec = do(t, h, http.MethodGet, "/profiles", nil)
	expectStatus(t, rec, http.StatusOK)
	var profiles []map[string]any
	json.Unmarshal(rec.Body.Bytes(), &profiles)
	if len(profiles) != 5 {
		t.Errorf("expected 5 profiles, got %d", len(profiles))
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodOptions, "/decks", nil)
	expectStatus(t, rec, http.StatusNoContent)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers")
	}
}
