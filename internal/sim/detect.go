package sim

import (
	"math"

	"dailyread/internal/geom"
)

// noDefenderSeparation stands in for "wide open" when a play has no defenders.
const noDefenderSeparation = 999.0

type emitFunc func(typ EventType, payload map[string]any)

// Detector turns positions into edge-triggered collision and zone events.
type Detector struct {
	colliding map[string]bool
	inside    map[string]bool
}

func NewDetector() *Detector {
	return &Detector{colliding: map[string]bool{}, inside: map[string]bool{}}
}

func (d *Detector) Reset() {
	clear(d.colliding)
	clear(d.inside)
}

// Collisions emits on the first tick two bodies overlap; separating clears
// the pair silently.
func (d *Detector) Collisions(watched *Entity, all []*Entity, emit emitFunc) {
	for _, other := range all {
		if other == nil || other.ID == watched.ID {
			continue
		}
		key := watched.ID + "-" + other.ID
		if watched.Pos.Dist(other.Pos) < watched.Radius+other.Radius {
			if !d.colliding[key] {
				d.colliding[key] = true
				emit(EventCollision, map[string]any{"with": other.ID})
			}
			continue
		}
		delete(d.colliding, key)
	}
}

// Zones emits entered/exit events on membership edges of each reach zone.
func (d *Detector) Zones(watched *Entity, objectives []Objective, emit emitFunc) {
	for _, o := range objectives {
		if o.Kind != ObjectiveReachZone {
			continue
		}
		inside := watched.Pos.Dist(o.Center) <= o.Radius
		was := d.inside[o.ID]
		switch {
		case inside && !was:
			d.inside[o.ID] = true
			emit(EventEnteredZone, map[string]any{"zone_id": o.ID})
		case !inside && was:
			d.inside[o.ID] = false
			emit(EventExitedZone, map[string]any{"zone_id": o.ID})
		}
	}
}

// MinSeparation is the distance from p to the nearest defender.
func MinSeparation(p geom.Vec2, all []*Entity) float64 {
	best := math.Inf(1)
	for _, e := range all {
		if e == nil || e.Kind != KindNPC {
			continue
		}
		if d := p.Dist(e.Pos); d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return noDefenderSeparation
	}
	return best
}

// ClassifyPass grades a throw by separation. Bounds are strict: a separation
// equal to interceptBelow is incomplete, equal to incompleteBelow is complete.
func ClassifyPass(separation, interceptBelow, incompleteBelow float64) EventType {
	switch {
	case separation < interceptBelow:
		return EventInterception
	case separation < incompleteBelow:
		return EventIncomplete
	}
	return EventComplete
}

// UnderPressure returns the first defender within radius of holder.
func UnderPressure(holder *Entity, all []*Entity, radius float64) *Entity {
	if holder == nil {
		return nil
	}
	for _, e := range all {
		if e == nil || e.Kind != KindNPC || e == holder {
			continue
		}
		if holder.Pos.Dist(e.Pos) <= radius {
			return e
		}
	}
	return nil
}
