package sim

import (
	"encoding/json"

	"dailyread/internal/config"
)

const (
	defaultDelta   = 1.0 / 60
	defaultMaxTime = 30.0
)

type Selection struct {
	EntityID string `json:"entity_id"`
	RouteID  string `json:"route_id"`
}

// Script drives a headless run: route picks before the snap, an optional
// throw, and a time cap.
type Script struct {
	Selections []Selection `json:"selections,omitempty"`
	ThrowTo    string      `json:"throw_to,omitempty"`
	ThrowAt    float64     `json:"throw_at,omitempty"`
	Delta      float64     `json:"delta,omitempty"`
	MaxTime    float64     `json:"max_time,omitempty"`
}

type Result struct {
	PlayID     int64             `json:"play_id"`
	PlayName   string            `json:"play_name"`
	Seed       uint32            `json:"seed"`
	Outcome    string            `json:"outcome"`
	Duration   float64           `json:"duration"`
	Score      float64           `json:"score"`
	Selections map[string]string `json:"selections"`
	Events     []Event           `json:"events,omitempty"`
}

// RunScripted plays p to completion on a synthetic frame clock. Two calls with
// the same play, script and seed return identical results.
func RunScripted(p *config.Play, sc Script, opts ...Option) (Result, error) {
	q := &FrameQueue{}
	s := NewSession(q, opts...)
	if err := s.LoadPlay(p); err != nil {
		return Result{}, err
	}
	for _, sel := range sc.Selections {
		s.SelectRoute(sel.EntityID, sel.RouteID)
	}

	delta := sc.Delta
	if delta <= 0 {
		delta = defaultDelta
	}
	maxTime := sc.MaxTime
	if maxTime <= 0 {
		maxTime = defaultMaxTime
	}
	step := Seconds(delta)

	s.Start()
	for s.Running() && q.Pending() > 0 {
		q.Advance(step)
		if sc.ThrowTo != "" && s.Running() && s.Time() >= sc.ThrowAt {
			s.ThrowTo(sc.ThrowTo)
		}
		if s.Running() && s.Time() >= maxTime {
			s.Stop()
		}
	}

	events := s.Events()
	return Result{
		PlayID:     p.ID,
		PlayName:   p.Name,
		Seed:       s.Seed(),
		Outcome:    Outcome(events),
		Duration:   roundTime(s.Time()),
		Score:      s.Score(),
		Selections: s.Selections(),
		Events:     events,
	}, nil
}

// Outcome names how a run ended: a pass result, "sack:<reason>", "stopped",
// or "" while still open.
func Outcome(events []Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		switch ev.Type {
		case EventComplete, EventIncomplete, EventInterception:
			return string(ev.Type)
		case EventSack:
			return "sack:" + ev.Str("reason")
		case EventStop:
			return "stopped"
		}
	}
	return ""
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
