package main

import (
	"testing"
	"time"

	"dailyread/internal/config"
	"dailyread/internal/geom"
	"dailyread/internal/playbook"
	"dailyread/internal/sim"
)

var fixedDay = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func TestProjectIdentityView(t *testing.T) {
	v := sim.View{Scale: 1}
	x, y := project(geom.Vec2{X: 450, Y: 300}, 900, 600, v, 90, 30)
	if x != 45 || y != 15 {
		t.Fatalf("centre = (%d,%d), want (45,15)", x, y)
	}
	x, y = project(geom.Vec2{}, 900, 600, v, 90, 30)
	if x != 0 || y != 0 {
		t.Fatalf("origin = (%d,%d), want (0,0)", x, y)
	}
}

func TestProjectZoomKeepsCentre(t *testing.T) {
	v := sim.View{Scale: 2}
	x, y := project(geom.Vec2{X: 450, Y: 300}, 900, 600, v, 90, 30)
	if x != 45 || y != 15 {
		t.Fatalf("centre = (%d,%d), want (45,15)", x, y)
	}
	x, _ = project(geom.Vec2{X: 675, Y: 300}, 900, 600, v, 90, 30)
	if x != 90 {
		t.Fatalf("x = %d, want 90", x)
	}
}

func TestReceiverIDs(t *testing.T) {
	s := sim.NewSession(nil, sim.WithSeed(1))
	if err := s.LoadPlay(playbook.Today(fixedDay)); err != nil {
		t.Fatal(err)
	}
	ids := receiverIDs(s)
	if len(ids) != len(playbook.ReceiverOrder) || ids[0] != "wr1" {
		t.Fatalf("receivers = %v", ids)
	}

	free := &config.Play{Name: "free", Entities: []config.EntityDef{
		{ID: "player", Type: "player", Behavior: config.BehaviorDef{Type: "controlled"}},
		{ID: "n1", Type: "npc"},
	}}
	if err := s.LoadPlay(free); err != nil {
		t.Fatal(err)
	}
	if ids := receiverIDs(s); len(ids) != 1 || ids[0] != "player" {
		t.Fatalf("free roam receivers = %v", ids)
	}
}

func TestGlyph(t *testing.T) {
	if r := glyph(sim.Entity{ID: "wr1", Label: "1 WR1"}); r != 'W' {
		t.Errorf("glyph = %q, want W", r)
	}
	if r := glyph(sim.Entity{ID: "cb1"}); r != 'c' {
		t.Errorf("glyph = %q, want c", r)
	}
}

func TestFormationCombos(t *testing.T) {
	combos := formationCombos()
	if combos[0] != "t tight" || combos[len(combos)-1] != "tandem wide" {
		t.Fatalf("combos = %v", combos)
	}
}
