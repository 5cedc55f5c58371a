package sim

import (
	"testing"

	"dailyread/internal/geom"
)

type recorder struct{ events []Event }

func (r *recorder) emit(typ EventType, payload map[string]any) {
	r.events = append(r.events, Event{Type: typ, Payload: payload})
}

func body(id string, kind Kind, x, y float64) *Entity {
	return &Entity{ID: id, Kind: kind, Pos: geom.Vec2{X: x, Y: y}, Radius: 10, Behavior: Static{}}
}

func TestZonesEdgeTriggered(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	p := body("p", KindPlayer, 0, 0)
	objs := []Objective{{ID: "z1", Kind: ObjectiveReachZone, Center: geom.Vec2{X: 100, Y: 0}, Radius: 20}}

	for _, x := range []float64{0, 85, 90, 100, 150, 160, 80} {
		p.Pos.X = x
		d.Zones(p, objs, rec.emit)
	}
	want := []EventType{EventEnteredZone, EventExitedZone, EventEnteredZone}
	if len(rec.events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(rec.events), len(want), rec.events)
	}
	for i, ev := range rec.events {
		if ev.Type != want[i] || ev.Str("zone_id") != "z1" {
			t.Errorf("event %d = %+v, want %s z1", i, ev, want[i])
		}
	}
	d.Zones(p, objs, rec.emit)
	if len(rec.events) != len(want) {
		t.Errorf("staying inside after re-entry emitted %+v", rec.events[len(want):])
	}
}

func TestZonesBoundaryIsInside(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	p := body("p", KindPlayer, 80, 0)
	objs := []Objective{{ID: "z1", Kind: ObjectiveReachZone, Center: geom.Vec2{X: 100, Y: 0}, Radius: 20}}
	d.Zones(p, objs, rec.emit)
	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1", len(rec.events))
	}
}

func TestCollisionsEdgeTriggered(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	p := body("p", KindPlayer, 0, 0)
	n := body("n1", KindNPC, 50, 0)
	all := []*Entity{p, n}

	for _, x := range []float64{50, 15, 10, 5, 40, 19} {
		n.Pos.X = x
		d.Collisions(p, all, rec.emit)
	}
	if len(rec.events) != 2 {
		t.Fatalf("got %d collisions, want 2: %+v", len(rec.events), rec.events)
	}
	if rec.events[0].Str("with") != "n1" {
		t.Errorf("with = %q, want n1", rec.events[0].Str("with"))
	}
}

func TestCollisionsTouchingIsNotOverlap(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	p := body("p", KindPlayer, 0, 0)
	n := body("n1", KindNPC, 20, 0)
	d.Collisions(p, []*Entity{p, n}, rec.emit)
	if len(rec.events) != 0 {
		t.Fatalf("got %d collisions, want 0", len(rec.events))
	}
}

func TestDetectorReset(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	p := body("p", KindPlayer, 0, 0)
	n := body("n1", KindNPC, 5, 0)
	d.Collisions(p, []*Entity{p, n}, rec.emit)
	d.Reset()
	d.Collisions(p, []*Entity{p, n}, rec.emit)
	if len(rec.events) != 2 {
		t.Fatalf("got %d collisions, want 2 after reset", len(rec.events))
	}
}

func TestClassifyPassThresholds(t *testing.T) {
	tests := []struct {
		sep  float64
		want EventType
	}{
		{0, EventInterception},
		{17.9, EventInterception},
		{18.0, EventIncomplete},
		{29.9, EventIncomplete},
		{30.0, EventComplete},
		{30.1, EventComplete},
	}
	for _, tc := range tests {
		if got := ClassifyPass(tc.sep, 18, 30); got != tc.want {
			t.Errorf("ClassifyPass(%v) = %s, want %s", tc.sep, got, tc.want)
		}
	}
}

func TestMinSeparation(t *testing.T) {
	all := []*Entity{
		body("qb", KindPlayer, 0, 0),
		body("cb1", KindNPC, 30, 40),
		body("cb2", KindNPC, 6, 8),
		body("goal", KindTarget, 1, 1),
	}
	if got := MinSeparation(geom.Vec2{}, all); got != 10 {
		t.Fatalf("separation = %v, want 10", got)
	}
	if got := MinSeparation(geom.Vec2{}, all[:1]); got != noDefenderSeparation {
		t.Fatalf("separation without defenders = %v, want %v", got, noDefenderSeparation)
	}
}

func TestUnderPressure(t *testing.T) {
	qb := body("qb", KindPlayer, 0, 0)
	dl := body("dl1", KindNPC, 24, 0)
	if got := UnderPressure(qb, []*Entity{qb, dl}, 24); got != dl {
		t.Fatalf("pressure at radius = %v, want dl1", got)
	}
	dl.Pos.X = 24.5
	if got := UnderPressure(qb, []*Entity{qb, dl}, 24); got != nil {
		t.Fatalf("pressure beyond radius = %v, want nil", got.ID)
	}
	if UnderPressure(nil, []*Entity{dl}, 24) != nil {
		t.Fatal("nil holder should never be pressured")
	}
}
