package config

// Tuning holds the motion constants. Zero values in a loaded file keep the
// defaults.
type Tuning struct {
	Speeds          Speeds  `yaml:"speeds"`
	WaypointEpsilon float64 `yaml:"waypoint_epsilon"`
	ZoneStopRadius  float64 `yaml:"zone_stop_radius"`
	WanderMin       float64 `yaml:"wander_min"`
	WanderMax       float64 `yaml:"wander_max"`
	PressureRadius  float64 `yaml:"pressure_radius"`
	InterceptBelow  float64 `yaml:"intercept_below"`
	IncompleteBelow float64 `yaml:"incomplete_below"`
}

type Speeds struct {
	Controlled  float64 `yaml:"controlled"`
	Patrol      float64 `yaml:"patrol"`
	Follow      float64 `yaml:"follow"`
	Wander      float64 `yaml:"wander"`
	RouteRunner float64 `yaml:"route_runner"`
	Chase       float64 `yaml:"chase"`
	Blitz       float64 `yaml:"blitz"`
	Zone        float64 `yaml:"zone"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Speeds: Speeds{
			Controlled:  120,
			Patrol:      40,
			Follow:      50,
			Wander:      30,
			RouteRunner: 110,
			Chase:       40,
			Blitz:       70,
			Zone:        35,
		},
		WaypointEpsilon: 1,
		ZoneStopRadius:  2,
		WanderMin:       0.5,
		WanderMax:       2.0,
		PressureRadius:  24,
		InterceptBelow:  18,
		IncompleteBelow: 30,
	}
}
