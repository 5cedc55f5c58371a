package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Play is one scenario document. The same structs decode YAML files and the
// JSON served to clients.
type Play struct {
	ID           int64          `yaml:"id" json:"id"`
	Name         string         `yaml:"name" json:"name"`
	PlayDate     string         `yaml:"play_date,omitempty" json:"play_date,omitempty"`
	Canvas       Canvas         `yaml:"canvas" json:"canvas"`
	Formation    string         `yaml:"formation,omitempty" json:"formation,omitempty"`
	FormationTag string         `yaml:"formation_tag,omitempty" json:"formation_tag,omitempty"`
	Coverage     string         `yaml:"coverage,omitempty" json:"coverage,omitempty"`
	Entities     []EntityDef    `yaml:"entities" json:"entities"`
	Routes       []RouteDef     `yaml:"routes" json:"routes"`
	Objectives   []ObjectiveDef `yaml:"objectives" json:"objectives"`
	Rules        Rules          `yaml:"rules,omitempty" json:"rules,omitempty"`
	BasePlan     []PlanItem     `yaml:"base_plan,omitempty" json:"base_plan,omitempty"`
}

type Canvas struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

type Vec2Def struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type EntityDef struct {
	ID       string      `yaml:"id" json:"id"`
	Type     string      `yaml:"type" json:"type"`
	Label    string      `yaml:"label,omitempty" json:"label,omitempty"`
	X        float64     `yaml:"x" json:"x"`
	Y        float64     `yaml:"y" json:"y"`
	Radius   float64     `yaml:"radius" json:"radius"`
	Color    string      `yaml:"color,omitempty" json:"color,omitempty"`
	Behavior BehaviorDef `yaml:"behavior" json:"behavior"`
}

// BehaviorDef accepts either a bare string ("static", "controlled") or an
// object with a type field.
type BehaviorDef struct {
	Type   string    `yaml:"type" json:"type"`
	Path   []Vec2Def `yaml:"path,omitempty" json:"path,omitempty"`
	Speed  float64   `yaml:"speed,omitempty" json:"speed,omitempty"`
	Loop   *bool     `yaml:"loop,omitempty" json:"loop,omitempty"`
	Target string    `yaml:"target,omitempty" json:"target,omitempty"`
	Route  string    `yaml:"route,omitempty" json:"route,omitempty"`
	Blitz  bool      `yaml:"blitz,omitempty" json:"blitz,omitempty"`
	Anchor Vec2Def   `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	Role   string    `yaml:"role,omitempty" json:"role,omitempty"`
}

func (b *BehaviorDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*b = BehaviorDef{Type: node.Value}
		return nil
	}
	type plain BehaviorDef
	return node.Decode((*plain)(b))
}

func (b *BehaviorDef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = BehaviorDef{Type: s}
		return nil
	}
	type plain BehaviorDef
	return json.Unmarshal(data, (*plain)(b))
}

type RouteDef struct {
	ID     string    `yaml:"id" json:"id"`
	Name   string    `yaml:"name" json:"name"`
	Points []Vec2Def `yaml:"points,omitempty" json:"points"`
	Color  string    `yaml:"color,omitempty" json:"color,omitempty"`
}

type ObjectiveDef struct {
	ID     string          `yaml:"id" json:"id"`
	Type   string          `yaml:"type" json:"type"`
	Params ObjectiveParams `yaml:"params" json:"params"`
}

type ObjectiveParams struct {
	X          float64  `yaml:"x,omitempty" json:"x,omitempty"`
	Y          float64  `yaml:"y,omitempty" json:"y,omitempty"`
	Radius     float64  `yaml:"radius,omitempty" json:"radius,omitempty"`
	TimeLimit  *float64 `yaml:"time_limit,omitempty" json:"time_limit,omitempty"`
	Penalty    float64  `yaml:"penalty,omitempty" json:"penalty,omitempty"`
	ZoneID     string   `yaml:"zone_id,omitempty" json:"zone_id,omitempty"`
	Deadline   float64  `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	Multiplier float64  `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
}

// Rules switch on the read variant. A zero PassWindow means free roam.
type Rules struct {
	BallHolder      string  `yaml:"ball_holder,omitempty" json:"ball_holder,omitempty"`
	PassWindow      float64 `yaml:"pass_window,omitempty" json:"pass_window,omitempty"`
	PressureRadius  float64 `yaml:"pressure_radius,omitempty" json:"pressure_radius,omitempty"`
	InterceptBelow  float64 `yaml:"intercept_below,omitempty" json:"intercept_below,omitempty"`
	IncompleteBelow float64 `yaml:"incomplete_below,omitempty" json:"incomplete_below,omitempty"`
}

type PlanItem struct {
	ReceiverID string `yaml:"receiver_id" json:"receiver_id"`
	RouteID    string `yaml:"route_id" json:"route_id"`
}

// Validate rejects documents the session cannot index.
func (p *Play) Validate() error {
	seen := make(map[string]bool, len(p.Entities))
	for i, e := range p.Entities {
		if e.ID == "" {
			return fmt.Errorf("entity %d: %w", i, ErrMissingID)
		}
		if seen[e.ID] {
			return fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = true
	}
	objs := make(map[string]bool, len(p.Objectives))
	for i, o := range p.Objectives {
		if o.ID == "" {
			return fmt.Errorf("objective %d: %w", i, ErrMissingID)
		}
		if objs[o.ID] {
			return fmt.Errorf("objective %q: %w", o.ID, ErrDuplicateID)
		}
		objs[o.ID] = true
	}
	return nil
}

func (r Rules) ReadVariant() bool { return r.PassWindow > 0 }
