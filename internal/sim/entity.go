package sim

import (
	"fmt"

	"dailyread/internal/config"
	"dailyread/internal/geom"
)

type Kind string

const (
	KindPlayer Kind = "player"
	KindNPC    Kind = "npc"
	KindTarget Kind = "target"
)

type Entity struct {
	ID     string
	Kind   Kind
	Label  string
	Color  string
	Pos    geom.Vec2
	Radius float64

	Behavior Behavior

	motion motionState
}

type motionState struct {
	spawn     geom.Vec2
	path      []geom.Vec2
	index     int
	drift     geom.Vec2
	countdown float64
	routeID   string
}

// Path returns a copy of the entity's current path.
func (e *Entity) Path() []geom.Vec2 { return append([]geom.Vec2(nil), e.motion.path...) }

func (e *Entity) RouteID() string { return e.motion.routeID }

func (e *Entity) Spawn() geom.Vec2 { return e.motion.spawn }

func (e *Entity) setPath(routeID string, path []geom.Vec2) {
	e.motion.routeID = routeID
	e.motion.path = path
	e.motion.index = 0
}

func (e *Entity) clone() Entity {
	c := *e
	c.motion.path = e.Path()
	return c
}

func newEntity(def config.EntityDef, t config.Tuning) (*Entity, error) {
	b, err := BehaviorFromDef(def.Behavior, t)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", def.ID, err)
	}
	kind := Kind(def.Type)
	switch kind {
	case KindPlayer, KindNPC, KindTarget:
	default:
		kind = KindTarget
	}
	pos := geom.Vec2{X: def.X, Y: def.Y}
	return &Entity{
		ID:       def.ID,
		Kind:     kind,
		Label:    def.Label,
		Color:    def.Color,
		Pos:      pos,
		Radius:   def.Radius,
		Behavior: b,
		motion:   motionState{spawn: pos},
	}, nil
}
