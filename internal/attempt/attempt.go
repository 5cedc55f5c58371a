package attempt

import (
	"time"

	"github.com/google/uuid"

	"dailyread/internal/sim"
)

//go:generate go tool mockgen -destination=./mocks/attempt_mock.go -package=mocks . Submitter,Store

// Attempt is one finished run as sent to the server. ClientID makes
// resubmission idempotent.
type Attempt struct {
	ClientID        string            `json:"client_id"`
	PlayID          int64             `json:"play_id"`
	PlayName        string            `json:"play_name"`
	PlayDate        string            `json:"play_date,omitempty"`
	RouteSelections map[string]string `json:"route_selections"`
	CoverageGuess   string            `json:"coverage_guess,omitempty"`
	Events          []sim.Event       `json:"events"`
	Score           float64           `json:"score"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Receipt is the server's answer to a submission.
type Receipt struct {
	ClientID        string  `json:"client_id"`
	AttemptID       string  `json:"attempt_id"`
	Score           float64 `json:"score"`
	Coverage        string  `json:"coverage,omitempty"`
	CoverageCorrect bool    `json:"coverage_correct"`
	Duplicate       bool    `json:"duplicate,omitempty"`
}

// FromSession snapshots the session's current play into a new attempt.
func FromSession(s *sim.Session, coverageGuess string, now time.Time) Attempt {
	a := Attempt{
		ClientID:        uuid.NewString(),
		RouteSelections: s.Selections(),
		CoverageGuess:   coverageGuess,
		Events:          s.Events(),
		Score:           s.Score(),
		CreatedAt:       now.UTC(),
	}
	if p := s.Play(); p != nil {
		a.PlayID = p.ID
		a.PlayName = p.Name
		a.PlayDate = p.PlayDate
	}
	return a
}
