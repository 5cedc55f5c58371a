package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadPlay reads a play document. JSON is valid YAML, so both formats work.
func LoadPlay(path string) (*Play, error) {
	var p Play
	if err := loadYAML(path, &p); err != nil {
		return nil, fmt.Errorf("load play %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("load play %s: %w", path, err)
	}
	return &p, nil
}

// LoadTuning overlays a tuning file on DefaultTuning. An empty path returns the
// defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	var over Tuning
	if err := loadYAML(path, &over); err != nil {
		return t, fmt.Errorf("load tuning %s: %w", path, err)
	}
	t.merge(over)
	return t, nil
}

func (t *Tuning) merge(o Tuning) {
	pick := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	pick(&t.Speeds.Controlled, o.Speeds.Controlled)
	pick(&t.Speeds.Patrol, o.Speeds.Patrol)
	pick(&t.Speeds.Follow, o.Speeds.Follow)
	pick(&t.Speeds.Wander, o.Speeds.Wander)
	pick(&t.Speeds.RouteRunner, o.Speeds.RouteRunner)
	pick(&t.Speeds.Chase, o.Speeds.Chase)
	pick(&t.Speeds.Blitz, o.Speeds.Blitz)
	pick(&t.Speeds.Zone, o.Speeds.Zone)
	pick(&t.WaypointEpsilon, o.WaypointEpsilon)
	pick(&t.ZoneStopRadius, o.ZoneStopRadius)
	pick(&t.WanderMin, o.WanderMin)
	pick(&t.WanderMax, o.WanderMax)
	pick(&t.PressureRadius, o.PressureRadius)
	pick(&t.InterceptBelow, o.InterceptBelow)
	pick(&t.IncompleteBelow, o.IncompleteBelow)
}
