package playbook

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"time"
	"unicode"

	"dailyread/internal/config"
	"dailyread/internal/util"
)

const (
	offenseColor = "#1d4ed8"
	defenseColor = "#dc2626"
	qbColor      = "#facc15"

	playerRadius = 12
	passWindow   = 6
)

var palette = []string{"#38bdf8", "#f59e0b", "#a78bfa", "#22c55e", "#f472b6", "#fb7185"}

var receiverLabels = map[string]string{
	"wr1": "1 WR1",
	"wr2": "2 WR2",
	"wr3": "3 WR3",
	"te":  "4 TE",
	"rb":  "5 RB",
	"qb":  "QB",
}

// PlayConfig is the generated call sheet behind a play name.
type PlayConfig struct {
	Name         string
	Formation    string
	FormationTag string
	Coverage     string
	Seed         uint32
	BasePlan     []config.PlanItem
}

// SeedForDate hashes the New York calendar date of now.
func SeedForDate(now time.Time) uint32 {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		now = now.In(loc)
	} else {
		now = now.UTC()
	}
	return SeedFromName(now.Format("2006-01-02"))
}

// SeedFromName is the low 32 bits of the SHA-256 of name.
func SeedFromName(name string) uint32 {
	sum := sha256.Sum256([]byte(name))
	return binary.BigEndian.Uint32(sum[len(sum)-4:])
}

func GeneratePlay(seed uint32) PlayConfig {
	rng := util.NewLCG(seed)
	formation := rng.Choice(formationNames(callSheet))
	subset := rng.Choice(subsetsOf(callSheet, formation))
	tag := rng.Choice(FormationTags)
	coverage := rng.Choice(Coverages)
	name := "Daily Read " + titleWords(formation) + " " + titleWords(subset) + " " +
		titleWords(tag) + " vs " + titleWords(coverage)
	plan := make([]config.PlanItem, 0, len(ReceiverOrder))
	for _, rid := range ReceiverOrder {
		plan = append(plan, config.PlanItem{ReceiverID: rid, RouteID: RouteID(rng.Choice(Routes))})
	}
	return PlayConfig{
		Name:         name,
		Formation:    formation + " " + subset,
		FormationTag: tag,
		Coverage:     coverage,
		Seed:         seed,
		BasePlan:     plan,
	}
}

// BuildPlay turns a call sheet into a read-variant play document.
func BuildPlay(cfg PlayConfig) *config.Play {
	offense := FormationPositions(cfg.Formation, cfg.FormationTag)
	defense := DefenseShell(cfg.Coverage)
	planned := map[string]string{}
	for _, it := range cfg.BasePlan {
		planned[it.ReceiverID] = it.RouteID
	}

	var entities []config.EntityDef
	for _, id := range append([]string{"qb"}, ReceiverOrder...) {
		p := offense[id]
		e := config.EntityDef{
			ID: id, Type: "player", Label: receiverLabels[id],
			X: p.X, Y: p.Y, Radius: playerRadius, Color: offenseColor,
		}
		if id == "qb" {
			e.Color = qbColor
			e.Behavior = config.BehaviorDef{Type: "controlled"}
		} else {
			e.Behavior = config.BehaviorDef{Type: "route_runner", Route: planned[id]}
		}
		entities = append(entities, e)
	}
	for _, role := range DefenderRoles {
		p := defense[role]
		entities = append(entities, config.EntityDef{
			ID: role, Type: "npc", Label: strings.ToUpper(role),
			X: p.X, Y: p.Y, Radius: playerRadius, Color: defenseColor,
			Behavior: DefenderBehavior(cfg.Coverage, role),
		})
	}

	routes := make([]config.RouteDef, len(Routes))
	for i, r := range Routes {
		routes[i] = config.RouteDef{ID: RouteID(r), Name: RouteName(r), Color: palette[i%len(palette)]}
	}

	return &config.Play{
		ID:           int64(cfg.Seed),
		Name:         cfg.Name,
		Canvas:       config.Canvas{Width: 900, Height: 600},
		Formation:    cfg.Formation,
		FormationTag: cfg.FormationTag,
		Coverage:     cfg.Coverage,
		Entities:     entities,
		Routes:       routes,
		Objectives:   []config.ObjectiveDef{{ID: "o1", Type: "pass_grade"}},
		Rules: config.Rules{
			BallHolder: "qb",
			PassWindow: passWindow,
		},
		BasePlan: append([]config.PlanItem(nil), cfg.BasePlan...),
	}
}

// Today builds the play of the day for now.
func Today(now time.Time) *config.Play {
	p := BuildPlay(GeneratePlay(SeedForDate(now)))
	p.PlayDate = PlayDate(now)
	return p
}

// FromName rebuilds an override play; the name is kept verbatim.
func FromName(name string) *config.Play {
	cfg := GeneratePlay(SeedFromName(name))
	cfg.Name = name
	return BuildPlay(cfg)
}

// ByID rebuilds a play from its id, which is the generator seed for both
// daily and override plays.
func ByID(id int64) *config.Play {
	return BuildPlay(GeneratePlay(uint32(id)))
}

// CoverageFor recovers the hidden coverage call for a play id.
func CoverageFor(id int64) string {
	return GeneratePlay(uint32(id)).Coverage
}

func PlayDate(now time.Time) string {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		now = now.In(loc)
	}
	return now.Format("2006-01-02")
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
