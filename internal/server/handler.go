package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"dailyread/internal/attempt"
	"dailyread/internal/playbook"
)

func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// NewPlayHandler serves today's play with the coverage call withheld. A name
// query parameter serves an override play instead.
func NewPlayHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		play := playbook.Today(now())
		if name := r.URL.Query().Get("name"); name != "" {
			play = playbook.FromName(name)
			play.PlayDate = playbook.PlayDate(now())
		}
		play.Coverage = ""
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(play); err != nil {
			slog.ErrorContext(r.Context(), "failed to encode play", "err", err)
		}
	}
}

// NewReceiptHandler serves the stored receipt for a client id.
func NewReceiptHandler(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		receipt, err := repo.Get(r.Context(), r.PathValue("client_id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to load receipt", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(receipt); err != nil {
			slog.ErrorContext(r.Context(), "failed to encode receipt", "err", err)
		}
	}
}

type AttemptHandler struct {
	repo Repository
	now  func() time.Time
}

func NewAttemptHandler(repo Repository, now func() time.Time) *AttemptHandler {
	return &AttemptHandler{repo: repo, now: now}
}

func (h *AttemptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	for {
		var a attempt.Attempt
		if err := wsjson.Read(ctx, conn, &a); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				slog.DebugContext(ctx, "attempt connection closed", "err", err)
			}
			return
		}
		receipt, err := h.handle(ctx, a)
		if err != nil {
			slog.WarnContext(ctx, "rejected attempt", "client_id", a.ClientID, "err", err)
			conn.Close(websocket.StatusPolicyViolation, err.Error())
			return
		}
		if err := wsjson.Write(ctx, conn, receipt); err != nil {
			slog.ErrorContext(ctx, "failed to write receipt", "client_id", a.ClientID, "err", err)
			return
		}
	}
}

func (h *AttemptHandler) handle(ctx context.Context, a attempt.Attempt) (attempt.Receipt, error) {
	if a.ClientID == "" {
		return attempt.Receipt{}, ErrMissingField
	}
	score, coverage, correct := Rescore(a)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = h.now().UTC()
	}
	r := attempt.Receipt{
		ClientID:        a.ClientID,
		AttemptID:       uuid.NewString(),
		Score:           score,
		Coverage:        coverage,
		CoverageCorrect: correct,
	}
	saved, created, err := h.repo.Save(ctx, a, r)
	if err != nil {
		return attempt.Receipt{}, err
	}
	saved.Duplicate = !created
	slog.InfoContext(ctx, "attempt scored",
		"client_id", a.ClientID, "play_id", a.PlayID, "score", saved.Score, "duplicate", saved.Duplicate)
	return saved, nil
}
