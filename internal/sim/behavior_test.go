package sim

import (
	"errors"
	"testing"

	"dailyread/internal/config"
)

func TestBehaviorFromDef(t *testing.T) {
	tuning := config.DefaultTuning()
	noLoop := false
	tests := []struct {
		def  config.BehaviorDef
		want Behavior
		name string
	}{
		{config.BehaviorDef{}, Static{}, "static"},
		{config.BehaviorDef{Type: "controlled"}, Controlled{Speed: 120}, "controlled"},
		{config.BehaviorDef{Type: "follow_target", Target: "qb", Speed: 95}, FollowTarget{TargetID: "qb", Speed: 95}, "follow"},
		{config.BehaviorDef{Type: "random"}, RandomWander{Speed: 30}, "random"},
		{config.BehaviorDef{Type: "route_runner", Route: "SLANT"}, RouteRunner{RouteID: "SLANT", Speed: 110}, "route_runner"},
		{config.BehaviorDef{Type: "chase_qb", Blitz: true}, ChaseQB{Speed: 40, BlitzSpeed: 70, Blitz: true}, "chase_qb"},
		{config.BehaviorDef{Type: "chase_qb", Speed: 90, Blitz: true}, ChaseQB{Speed: 90, BlitzSpeed: 90, Blitz: true}, "chase_qb"},
		{config.BehaviorDef{Type: "chase_qb", Speed: 50, Blitz: true}, ChaseQB{Speed: 50, BlitzSpeed: 70, Blitz: true}, "chase_qb"},
	}
	for _, tc := range tests {
		got, err := BehaviorFromDef(tc.def, tuning)
		if err != nil {
			t.Fatalf("%s: %v", tc.def.Type, err)
		}
		if got != tc.want {
			t.Errorf("%s = %#v, want %#v", tc.def.Type, got, tc.want)
		}
		if BehaviorName(got) != tc.name {
			t.Errorf("BehaviorName(%#v) = %q, want %q", got, BehaviorName(got), tc.name)
		}
	}

	p, err := BehaviorFromDef(config.BehaviorDef{Type: "patrol", Path: []config.Vec2Def{{X: 1, Y: 2}}}, tuning)
	if err != nil {
		t.Fatal(err)
	}
	if pat := p.(Patrol); !pat.Loop || pat.Speed != 40 || len(pat.Path) != 1 {
		t.Errorf("patrol = %#v", pat)
	}
	p, _ = BehaviorFromDef(config.BehaviorDef{Type: "patrol", Loop: &noLoop}, tuning)
	if p.(Patrol).Loop {
		t.Error("explicit loop: false ignored")
	}

	z, _ := BehaviorFromDef(config.BehaviorDef{Type: "zone", Anchor: config.Vec2Def{X: 0, Y: -40}}, tuning)
	if zd := z.(ZoneDefend); zd.AnchorOffset.Y != -40 || zd.Speed != 35 || BehaviorName(zd) != "zone" {
		t.Errorf("zone = %#v", zd)
	}

	if _, err := BehaviorFromDef(config.BehaviorDef{Type: "teleport"}, tuning); !errors.Is(err, ErrUnknownBehavior) {
		t.Fatalf("err = %v, want ErrUnknownBehavior", err)
	}
}
