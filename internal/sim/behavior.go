package sim

import (
	"fmt"
	"math"

	"dailyread/internal/config"
	"dailyread/internal/geom"
)

// Behavior is a closed set; the motion kernel switches over every variant.
type Behavior interface{ behavior() }

type Static struct{}

// Controlled follows the route selected for the entity.
type Controlled struct{ Speed float64 }

type Patrol struct {
	Path  []geom.Vec2
	Speed float64
	Loop  bool
}

type FollowTarget struct {
	TargetID string
	Speed    float64
}

type RandomWander struct{ Speed float64 }

// RouteRunner runs RouteID unless a different route was selected for it.
type RouteRunner struct {
	RouteID string
	Speed   float64
}

type ChaseQB struct {
	Speed      float64
	BlitzSpeed float64
	Blitz      bool
}

type ZoneDefend struct {
	AnchorOffset geom.Vec2
	Speed        float64
}

func (Static) behavior()       {}
func (Controlled) behavior()   {}
func (Patrol) behavior()       {}
func (FollowTarget) behavior() {}
func (RandomWander) behavior() {}
func (RouteRunner) behavior()  {}
func (ChaseQB) behavior()      {}
func (ZoneDefend) behavior()   {}

// BehaviorFromDef resolves a document behavior, filling default speeds from t.
func BehaviorFromDef(def config.BehaviorDef, t config.Tuning) (Behavior, error) {
	speed := func(d float64) float64 {
		if def.Speed > 0 {
			return def.Speed
		}
		return d
	}
	switch def.Type {
	case "", "static":
		return Static{}, nil
	case "controlled":
		return Controlled{Speed: speed(t.Speeds.Controlled)}, nil
	case "patrol":
		path := make([]geom.Vec2, len(def.Path))
		for i, p := range def.Path {
			path[i] = geom.Vec2{X: p.X, Y: p.Y}
		}
		loop := true
		if def.Loop != nil {
			loop = *def.Loop
		}
		return Patrol{Path: path, Speed: speed(t.Speeds.Patrol), Loop: loop}, nil
	case "follow", "follow_target":
		return FollowTarget{TargetID: def.Target, Speed: speed(t.Speeds.Follow)}, nil
	case "random", "random_wander":
		return RandomWander{Speed: speed(t.Speeds.Wander)}, nil
	case "route_runner":
		return RouteRunner{RouteID: def.Route, Speed: speed(t.Speeds.RouteRunner)}, nil
	case "chase_qb":
		base := speed(t.Speeds.Chase)
		return ChaseQB{Speed: base, BlitzSpeed: math.Max(t.Speeds.Blitz, base), Blitz: def.Blitz}, nil
	case "zone", "zone_defend":
		return ZoneDefend{
			AnchorOffset: geom.Vec2{X: def.Anchor.X, Y: def.Anchor.Y},
			Speed:        speed(t.Speeds.Zone),
		}, nil
	}
	return nil, fmt.Errorf("behavior %q: %w", def.Type, ErrUnknownBehavior)
}

// BehaviorName is the document name of b.
func BehaviorName(b Behavior) string {
	switch b.(type) {
	case Static:
		return "static"
	case Controlled:
		return "controlled"
	case Patrol:
		return "patrol"
	case FollowTarget:
		return "follow"
	case RandomWander:
		return "random"
	case RouteRunner:
		return "route_runner"
	case ChaseQB:
		return "chase_qb"
	case ZoneDefend:
		return "zone"
	}
	return "static"
}
