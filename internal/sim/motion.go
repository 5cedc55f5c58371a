package sim

import (
	"math"

	"dailyread/internal/config"
	"dailyread/internal/geom"
)

// World is what the kernel may look up while moving one entity.
type World interface {
	Entity(id string) *Entity
	BallHolder() *Entity
	Rand() float64
}

type Kernel struct {
	Tuning config.Tuning
}

// Advance moves e by one Euler step. Missing references and empty paths are
// no-ops for this tick.
func (k Kernel) Advance(e *Entity, w World, delta float64) {
	if e == nil || delta <= 0 {
		return
	}
	switch b := e.Behavior.(type) {
	case Static, nil:
	case Controlled:
		k.followPath(e, e.motion.path, b.Speed, delta, false)
	case RouteRunner:
		k.followPath(e, e.motion.path, b.Speed, delta, false)
	case Patrol:
		k.followPath(e, b.Path, b.Speed, delta, b.Loop)
	case FollowTarget:
		target := w.Entity(b.TargetID)
		if target == nil || target == e {
			return
		}
		e.Pos = geom.StepToward(e.Pos, target.Pos, b.Speed*delta)
	case RandomWander:
		k.wander(e, w, b.Speed, delta)
	case ChaseQB:
		holder := w.BallHolder()
		if holder == nil || holder == e {
			return
		}
		speed := b.Speed
		if b.Blitz && b.BlitzSpeed > 0 {
			speed = b.BlitzSpeed
		}
		e.Pos = geom.StepToward(e.Pos, holder.Pos, speed*delta)
	case ZoneDefend:
		anchor := e.motion.spawn.Add(b.AnchorOffset)
		if e.Pos.Dist(anchor) <= k.Tuning.ZoneStopRadius {
			return
		}
		e.Pos = geom.StepToward(e.Pos, anchor, b.Speed*delta)
	}
}

// followPath steers toward path[index], re-aiming every tick.
func (k Kernel) followPath(e *Entity, path []geom.Vec2, speed, delta float64, loop bool) {
	if len(path) == 0 {
		return
	}
	st := &e.motion
	if st.index >= len(path) || st.index < 0 {
		st.index = 0
	}
	target := path[st.index]
	if e.Pos.Dist(target) < k.Tuning.WaypointEpsilon {
		next := st.index + 1
		if next >= len(path) {
			if !loop {
				st.index = len(path) - 1
				return
			}
			next = 0
		}
		st.index = next
		target = path[next]
	}
	e.Pos = geom.StepToward(e.Pos, target, speed*delta)
}

func (k Kernel) wander(e *Entity, w World, speed, delta float64) {
	st := &e.motion
	st.countdown -= delta
	if st.countdown <= 0 {
		st.countdown = k.Tuning.WanderMin + w.Rand()*(k.Tuning.WanderMax-k.Tuning.WanderMin)
		st.drift = geom.FromAngle(w.Rand() * 2 * math.Pi)
	}
	e.Pos = e.Pos.Add(st.drift.Scale(speed * delta))
}
