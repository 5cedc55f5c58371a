package sim

import (
	"math"

	"dailyread/internal/config"
	"dailyread/internal/geom"
)

type ObjectiveKind string

const (
	ObjectiveReachZone      ObjectiveKind = "reach_zone"
	ObjectiveAvoidCollision ObjectiveKind = "avoid_collision"
	ObjectiveTimeBonus      ObjectiveKind = "time_bonus"
	ObjectivePassGrade      ObjectiveKind = "pass_grade"
)

const (
	reachZoneBonus       = 100.0
	defaultTimeLimit     = 60.0
	defaultPenalty       = 50.0
	defaultDeadline      = 60.0
	defaultMultiplier    = 2.0
	completeBonus        = 400.0
	interceptionPenalty  = 350.0
	sackPenalty          = 150.0
	separationMultiplier = 40.0
	separationCap        = 200.0
)

// Objective is a scoring rule. Fields not used by Kind are zero.
type Objective struct {
	ID         string
	Kind       ObjectiveKind
	Center     geom.Vec2
	Radius     float64
	TimeLimit  float64
	Penalty    float64
	ZoneID     string
	Deadline   float64
	Multiplier float64
}

// ObjectivesFromDefs applies defaults. Unknown kinds are kept and ignored by
// Score.
func ObjectivesFromDefs(defs []config.ObjectiveDef) []Objective {
	out := make([]Objective, 0, len(defs))
	for _, d := range defs {
		p := d.Params
		o := Objective{
			ID:         d.ID,
			Kind:       ObjectiveKind(d.Type),
			Center:     geom.Vec2{X: p.X, Y: p.Y},
			Radius:     p.Radius,
			TimeLimit:  defaultTimeLimit,
			Penalty:    p.Penalty,
			ZoneID:     p.ZoneID,
			Deadline:   p.Deadline,
			Multiplier: p.Multiplier,
		}
		if p.TimeLimit != nil {
			o.TimeLimit = *p.TimeLimit
		}
		if o.Penalty <= 0 {
			o.Penalty = defaultPenalty
		}
		if o.ZoneID == "" {
			o.ZoneID = d.ID
		}
		if o.Deadline <= 0 {
			o.Deadline = defaultDeadline
		}
		if o.Multiplier <= 0 {
			o.Multiplier = defaultMultiplier
		}
		out = append(out, o)
	}
	return out
}

type zoneTally struct {
	firstEntry float64
	entered    bool
	openSince  float64
	open       bool
	dwell      float64
}

type logSummary struct {
	zones         map[string]*zoneTally
	collisions    int
	complete      bool
	interception  bool
	sacked        bool
	maxSeparation float64
}

func summarize(events []Event) logSummary {
	s := logSummary{zones: map[string]*zoneTally{}}
	zone := func(id string) *zoneTally {
		z := s.zones[id]
		if z == nil {
			z = &zoneTally{}
			s.zones[id] = z
		}
		return z
	}
	for _, ev := range events {
		switch ev.Type {
		case EventEnteredZone:
			id := ev.Str("zone_id")
			if id == "" {
				continue
			}
			z := zone(id)
			if !z.entered {
				z.entered = true
				z.firstEntry = ev.T
			}
			z.open = true
			z.openSince = ev.T
		case EventExitedZone:
			id := ev.Str("zone_id")
			if id == "" {
				continue
			}
			z := zone(id)
			if z.open {
				z.dwell += ev.T - z.openSince
				z.open = false
			}
		case EventCollision:
			s.collisions++
		case EventComplete:
			s.complete = true
		case EventInterception:
			s.interception = true
		case EventSack:
			s.sacked = true
		case EventTarget:
			if sep := ev.Num("separation"); sep > s.maxSeparation {
				s.maxSeparation = sep
			}
		}
	}
	return s
}

// Score reduces the event log against the objectives. It keeps no state.
func Score(objectives []Objective, events []Event) float64 {
	sum := summarize(events)
	score := 0.0
	for _, o := range objectives {
		switch o.Kind {
		case ObjectiveReachZone:
			z := sum.zones[o.ID]
			if z == nil {
				continue
			}
			if z.entered && z.firstEntry <= o.TimeLimit {
				score += reachZoneBonus
			}
			score += z.dwell
		case ObjectiveAvoidCollision:
			score -= o.Penalty * float64(sum.collisions)
		case ObjectiveTimeBonus:
			if z := sum.zones[o.ZoneID]; z != nil && z.entered {
				score += math.Max(0, o.Deadline-z.firstEntry) * o.Multiplier
			}
		case ObjectivePassGrade:
			if sum.complete {
				score += completeBonus
			}
			if sum.interception {
				score -= interceptionPenalty
			}
			if sum.sacked {
				score -= sackPenalty
			}
			score += math.Min(separationCap, sum.maxSeparation*separationMultiplier)
		}
	}
	return math.Round(score*10) / 10
}

// Dwell reports the closed-interval time spent in zoneID.
func Dwell(events []Event, zoneID string) float64 {
	if z := summarize(events).zones[zoneID]; z != nil {
		return z.dwell
	}
	return 0
}
