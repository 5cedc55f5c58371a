package playbook

import (
	"sort"
	"testing"
	"time"

	"dailyread/internal/config"
	"dailyread/internal/geom"
)

func TestRouteShapeStartsAtStart(t *testing.T) {
	start := geom.Vec2{X: 230, Y: 435}
	for _, r := range Routes {
		pts := RouteShape(r, start)
		if len(pts) < 2 {
			t.Fatalf("%s: expected at least 2 points, got %d", r, len(pts))
		}
		if pts[0] != start {
			t.Errorf("%s: first point %+v, want %+v", r, pts[0], start)
		}
	}
}

func TestRouteShapeIsPureAndFresh(t *testing.T) {
	a := RouteShape("SLANT", geom.Vec2{X: 10, Y: 20})
	b := RouteShape("slant", geom.Vec2{X: 10, Y: 20})
	if len(a) != len(b) {
		t.Fatalf("case-insensitive lookup differs")
	}
	a[1].X = -1
	if b[1].X == -1 {
		t.Fatalf("RouteShape results alias each other")
	}
	moved := RouteShape("slant", geom.Vec2{X: 20, Y: 20})
	if moved[1].X != b[1].X+10 {
		t.Errorf("shape did not follow start: %+v vs %+v", moved[1], b[1])
	}
}

func TestRouteShapeUnknownRunsVertical(t *testing.T) {
	pts := RouteShape("nope", geom.Vec2{X: 5, Y: 200})
	if len(pts) != 2 || pts[1] != (geom.Vec2{X: 5, Y: 80}) {
		t.Fatalf("unexpected default shape: %+v", pts)
	}
}

func TestRouteBookFixedAndCatalogRoutes(t *testing.T) {
	rb := NewRouteBook([]config.RouteDef{
		{ID: "A", Points: []config.Vec2Def{{X: 120, Y: 300}, {X: 700, Y: 300}}},
		{ID: "CURL"},
	})
	fixed, ok := rb.Shape("A", geom.Vec2{X: 0, Y: 0})
	if !ok || fixed[0] != (geom.Vec2{X: 120, Y: 300}) {
		t.Fatalf("fixed route should ignore start: %+v", fixed)
	}
	curl, ok := rb.Shape("CURL", geom.Vec2{X: 50, Y: 400})
	if !ok || curl[0] != (geom.Vec2{X: 50, Y: 400}) {
		t.Fatalf("catalog route should start at start: %+v", curl)
	}
	if _, ok := rb.Shape("MISSING", geom.Vec2{}); ok {
		t.Fatalf("missing route resolved")
	}
}

func TestRouteBookCycle(t *testing.T) {
	rb := NewRouteBook([]config.RouteDef{{ID: "A"}, {ID: "B"}, {ID: "C"}})
	cases := []struct {
		current string
		dir     int
		want    string
	}{
		{"A", 1, "B"},
		{"C", 1, "A"},
		{"A", -1, "C"},
		{"", 1, "A"},
	}
	for _, c := range cases {
		if got := rb.Cycle(c.current, c.dir); got != c.want {
			t.Errorf("Cycle(%q, %d) = %q, want %q", c.current, c.dir, got, c.want)
		}
	}
}

func TestCoveragesSortedUnique(t *testing.T) {
	if !sort.StringsAreSorted(Coverages) {
		t.Fatalf("coverages not sorted")
	}
	for i := 1; i < len(Coverages); i++ {
		if Coverages[i] == Coverages[i-1] {
			t.Fatalf("duplicate coverage %q", Coverages[i])
		}
	}
	// 7 bases × (1 + 25 modifiers + 90 ordered stack pairs), minus overlaps.
	if len(Coverages) < 700 {
		t.Fatalf("unexpectedly few coverages: %d", len(Coverages))
	}
}

func TestFormationPositionsVariants(t *testing.T) {
	base := FormationPositions("pro split", "x")
	if base["qb"] != (geom.Vec2{X: 450, Y: 550}) {
		t.Errorf("qb position: %+v", base["qb"])
	}
	trips := FormationPositions("gun trips", "x")
	if trips["wr3"] != (geom.Vec2{X: 770, Y: 410}) {
		t.Errorf("trips wr3: %+v", trips["wr3"])
	}
	empty := FormationPositions("gun empty", "x")
	if empty["rb"] != (geom.Vec2{X: 750, Y: 430}) {
		t.Errorf("empty rb: %+v", empty["rb"])
	}
	bunch := FormationPositions("gun trips", "bunch")
	if bunch["wr1"] != (geom.Vec2{X: 570, Y: 445}) {
		t.Errorf("bunch overrides trips: %+v", bunch["wr1"])
	}
}

func TestDefenderBehaviorByCoverage(t *testing.T) {
	cases := []struct {
		coverage, role, wantType string
		blitz                    bool
	}{
		{"2", "de1", "chase_qb", false},
		{"1 lb blitz", "lb1", "chase_qb", true},
		{"3 safety blitz", "ss", "chase_qb", true},
		{"3 safety blitz", "lb1", "zone", false},
		{"0 press", "cb1", "follow", false},
		{"4 spy", "lb3", "follow", false},
		{"4", "fs", "zone", false},
	}
	for _, c := range cases {
		b := DefenderBehavior(c.coverage, c.role)
		if b.Type != c.wantType || b.Blitz != c.blitz {
			t.Errorf("%s/%s = %+v, want type %s blitz %v", c.coverage, c.role, b, c.wantType, c.blitz)
		}
	}
}

func TestGeneratePlayDeterministic(t *testing.T) {
	a, b := GeneratePlay(12345), GeneratePlay(12345)
	if a.Name != b.Name || a.Coverage != b.Coverage || len(a.BasePlan) != len(ReceiverOrder) {
		t.Fatalf("generator not deterministic: %+v vs %+v", a, b)
	}
	if subsetsOf(callSheet, a.Formation[:len(a.Formation)-len(lastWord(a.Formation))-1]) == nil {
		t.Errorf("generated unknown formation %q", a.Formation)
	}
}

func TestGeneratePlayKnownDates(t *testing.T) {
	cases := []struct {
		date      string
		seed      uint32
		formation string
		tag       string
	}{
		{"2026-10-19", 68756137, "pistol trips", "x"},
		{"2026-10-20", 1461561245, "pistol base", "nasty"},
		{"2026-10-21", 3932123340, "i pro", "x"},
	}
	for _, c := range cases {
		day, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatal(err)
		}
		seed := SeedForDate(day.Add(16 * time.Hour))
		if seed != c.seed {
			t.Fatalf("%s: seed = %d, want %d", c.date, seed, c.seed)
		}
		cfg := GeneratePlay(seed)
		if cfg.Formation != c.formation || cfg.FormationTag != c.tag {
			t.Errorf("%s: call = %q/%q, want %q/%q", c.date, cfg.Formation, cfg.FormationTag, c.formation, c.tag)
		}
	}
}

func TestGeneratePlayNeverCallsEmpty(t *testing.T) {
	for seed := uint32(0); seed < 2000; seed++ {
		if f := GeneratePlay(seed).Formation; lastWord(f) == "empty" {
			t.Fatalf("seed %d generated %q", seed, f)
		}
	}
}

func lastWord(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' {
			return s[i+1:]
		}
	}
	return s
}

func TestBuildPlayShape(t *testing.T) {
	p := BuildPlay(GeneratePlay(99))
	if err := p.Validate(); err != nil {
		t.Fatalf("generated play invalid: %v", err)
	}
	if len(p.Entities) != 6+len(DefenderRoles) {
		t.Fatalf("expected %d entities, got %d", 6+len(DefenderRoles), len(p.Entities))
	}
	if !p.Rules.ReadVariant() || p.Rules.BallHolder != "qb" {
		t.Errorf("rules: %+v", p.Rules)
	}
	if len(p.Routes) != len(Routes) || p.Routes[0].ID != "CURL" || p.Routes[9].Name != "Swing Left" {
		t.Errorf("routes: %+v", p.Routes[:2])
	}
	if p.ID != 99 || CoverageFor(p.ID) != p.Coverage {
		t.Errorf("coverage not recoverable from id")
	}
}

func TestSeedForDateUsesCalendarDay(t *testing.T) {
	a := SeedForDate(time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC))
	b := SeedForDate(time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC))
	if a != b {
		t.Fatalf("same New York day produced different seeds")
	}
	if SeedFromName("x") == SeedFromName("y") {
		t.Fatalf("distinct names collided")
	}
}

func TestFromNameKeepsName(t *testing.T) {
	p := FromName("My Override")
	if p.Name != "My Override" || p.ID != int64(SeedFromName("My Override")) {
		t.Fatalf("override play: %q id %d", p.Name, p.ID)
	}
}
