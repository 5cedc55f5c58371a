package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"dailyread/internal/attempt"
	"dailyread/internal/config"
	"dailyread/internal/playbook"
	"dailyread/internal/sim"
)

var fixedNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	srv := httptest.NewServer(Route(repo, func() time.Time { return fixedNow }))
	t.Cleanup(srv.Close)
	return srv, repo
}

func passEvents(outcome sim.EventType, sep float64) []sim.Event {
	return []sim.Event{
		{T: 0, Type: sim.EventStart},
		{T: 2.5, Type: sim.EventTarget, Payload: map[string]any{"receiver_id": "wr1", "separation": sep}},
		{T: 2.5, Type: outcome, Payload: map[string]any{"receiver_id": "wr1"}},
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPlayTodayHidesCoverage(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/play/today")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var p config.Play
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := playbook.Today(fixedNow)
	if p.ID != want.ID || p.Name != want.Name || p.PlayDate != "2026-03-14" {
		t.Fatalf("play = %d %q %q, want %d %q", p.ID, p.Name, p.PlayDate, want.ID, want.Name)
	}
	if p.Coverage != "" {
		t.Fatalf("coverage leaked: %q", p.Coverage)
	}
	if len(p.Entities) != len(want.Entities) {
		t.Fatalf("entities = %d, want %d", len(p.Entities), len(want.Entities))
	}
}

func TestRescore(t *testing.T) {
	play := playbook.Today(fixedNow)
	tests := []struct {
		name    string
		guess   string
		events  []sim.Event
		want    float64
		correct bool
	}{
		{"correct read complete", strings.ToUpper(play.Coverage), passEvents(sim.EventComplete, 31), 950, true},
		{"missed read complete", "nonsense", passEvents(sim.EventComplete, 3), 670, false},
		{"no guess", "", passEvents(sim.EventIncomplete, 2.5), 250, false},
		{"clamped at zero", "", append(passEvents(sim.EventInterception, 0),
			sim.Event{T: 3, Type: sim.EventSack, Payload: map[string]any{"reason": "timer"}}), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := attempt.Attempt{ClientID: "x", PlayID: play.ID, CoverageGuess: tc.guess, Events: tc.events, Score: 9999}
			score, coverage, correct := Rescore(a)
			if score != tc.want || correct != tc.correct {
				t.Fatalf("score = %v correct = %v, want %v %v", score, correct, tc.want, tc.correct)
			}
			if coverage != play.Coverage {
				t.Fatalf("coverage = %q, want %q", coverage, play.Coverage)
			}
		})
	}
}

func TestAttemptIdempotentOnClientID(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	play := playbook.Today(fixedNow)
	a := attempt.Attempt{
		ClientID:      "client-1",
		PlayID:        play.ID,
		PlayName:      play.Name,
		CoverageGuess: play.Coverage,
		Events:        passEvents(sim.EventComplete, 31),
	}

	sub := attempt.NewWSSubmitter("ws" + strings.TrimPrefix(srv.URL, "http") + "/api/attempts")
	first, err := sub.Submit(ctx, a)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if first.Score != 950 || !first.CoverageCorrect || first.Duplicate || first.AttemptID == "" {
		t.Fatalf("first receipt = %+v", first)
	}

	a.Events = nil
	second, err := sub.Submit(ctx, a)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !second.Duplicate || second.AttemptID != first.AttemptID || second.Score != first.Score {
		t.Fatalf("second receipt = %+v, want duplicate of %+v", second, first)
	}
	if repo.Len() != 1 {
		t.Fatalf("repo holds %d attempts, want 1", repo.Len())
	}
}

func TestAttemptMissingClientIDRejected(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/attempts", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.CloseNow()
	if err := wsjson.Write(ctx, conn, attempt.Attempt{PlayID: 1}); err != nil {
		t.Fatal(err)
	}
	var r attempt.Receipt
	err = wsjson.Read(ctx, conn, &r)
	if websocket.CloseStatus(err) != websocket.StatusPolicyViolation {
		t.Fatalf("read err = %v, want policy violation close", err)
	}
	if repo.Len() != 0 {
		t.Fatal("rejected attempt was stored")
	}
}

func TestReceiptLookup(t *testing.T) {
	srv, repo := newTestServer(t)
	stored := attempt.Receipt{ClientID: "client-7", AttemptID: "a-7", Score: 420, Coverage: "2 man"}
	if _, _, err := repo.Save(context.Background(), attempt.Attempt{ClientID: "client-7"}, stored); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/api/attempts/client-7")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got attempt.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != stored {
		t.Fatalf("receipt = %+v, want %+v", got, stored)
	}

	missing, err := http.Get(srv.URL + "/api/attempts/nobody")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown client status = %d, want 404", missing.StatusCode)
	}
}
