package playbook

import (
	"strings"

	"dailyread/internal/config"
	"dailyread/internal/geom"
)

const (
	centerX = 450.0
	qbY     = 550.0
)

// FormationPositions lays out the offense for a formation ("gun trips") and tag.
func FormationPositions(formation, tag string) map[string]geom.Vec2 {
	pos := map[string]geom.Vec2{
		"qb":  {X: centerX, Y: qbY},
		"wr1": {X: centerX - 220, Y: 435},
		"wr2": {X: centerX, Y: 415},
		"wr3": {X: centerX + 220, Y: 435},
		"te":  {X: centerX + 70, Y: qbY - 25},
		"rb":  {X: centerX - 70, Y: qbY - 10},
	}
	empty := strings.Contains(formation, "empty")
	if empty {
		pos["rb"] = geom.Vec2{X: centerX + 300, Y: 430}
	}
	if strings.Contains(formation, "trips") {
		pos["wr1"] = geom.Vec2{X: centerX + 120, Y: 430}
		pos["wr2"] = geom.Vec2{X: centerX + 220, Y: 420}
		pos["wr3"] = geom.Vec2{X: centerX + 320, Y: 410}
	}
	switch tag {
	case "bunch":
		pos["wr1"] = geom.Vec2{X: centerX + 120, Y: 445}
		pos["wr2"] = geom.Vec2{X: centerX + 145, Y: 430}
		pos["wr3"] = geom.Vec2{X: centerX + 170, Y: 415}
	case "nasty":
		pos["wr1"] = geom.Vec2{X: centerX - 120, Y: 450}
		pos["wr2"] = geom.Vec2{X: centerX - 60, Y: 425}
		pos["wr3"] = geom.Vec2{X: centerX, Y: 410}
	}
	return pos
}

func coverageBase(coverage string) string {
	if f := strings.Fields(coverage); len(f) > 0 {
		return f[0]
	}
	return ""
}

// DefenseShell places the eleven defenders for a coverage call, upfield of
// the offense.
func DefenseShell(coverage string) map[string]geom.Vec2 {
	shellY := 240.0
	switch coverageBase(coverage) {
	case "0", "1":
		shellY = 280
	case "2", "3":
		shellY = 240
	case "4", "6", "9":
		shellY = 200
	}
	pos := map[string]geom.Vec2{
		"de1": {X: centerX - 120, Y: 395},
		"dt1": {X: centerX - 40, Y: 395},
		"dt2": {X: centerX + 40, Y: 395},
		"de2": {X: centerX + 120, Y: 395},
		"lb1": {X: centerX - 80, Y: 340},
		"lb2": {X: centerX + 80, Y: 340},
		"lb3": {X: centerX, Y: 330},
		"cb1": {X: centerX - 220, Y: 330},
		"cb2": {X: centerX + 220, Y: 330},
		"ss":  {X: centerX - 70, Y: shellY},
		"fs":  {X: centerX + 70, Y: shellY},
	}
	if strings.Contains(coverage, "press") {
		pos["cb1"] = geom.Vec2{X: centerX - 220, Y: 400}
		pos["cb2"] = geom.Vec2{X: centerX + 220, Y: 400}
	}
	if strings.Contains(coverage, "blitz") {
		pos["lb1"] = geom.Vec2{X: centerX - 60, Y: 370}
		pos["lb2"] = geom.Vec2{X: centerX + 60, Y: 370}
	}
	return pos
}

// DefenderRoles lists defender ids in document order.
var DefenderRoles = []string{"cb1", "cb2", "lb1", "lb2", "lb3", "ss", "fs", "de1", "dt1", "dt2", "de2"}

// DefenderBehavior maps a coverage call and a role to a behavior.
func DefenderBehavior(coverage, role string) config.BehaviorDef {
	has := func(s string) bool { return strings.Contains(coverage, s) }
	switch role {
	case "de1", "dt1", "dt2", "de2":
		return config.BehaviorDef{Type: "chase_qb", Role: role}
	case "lb1", "lb2":
		if has("lb blitz") || (has(" blitz") && !has("safety blitz") && !has("cb zone blitz")) {
			return config.BehaviorDef{Type: "chase_qb", Blitz: true, Role: role}
		}
		dx := -40.0
		if role == "lb2" {
			dx = 40
		}
		return zone(role, dx, -70)
	case "lb3":
		if has("spy") {
			return config.BehaviorDef{Type: "follow", Target: "qb", Speed: 40, Role: role}
		}
		return zone(role, 0, -60)
	case "cb1", "cb2":
		if role == "cb2" && has("cb zone blitz") {
			return config.BehaviorDef{Type: "chase_qb", Blitz: true, Role: role}
		}
		if has("man") || has("press") {
			target := "wr1"
			if role == "cb2" {
				target = "wr3"
			}
			return config.BehaviorDef{Type: "follow", Target: target, Speed: 95, Role: role}
		}
		dx := -30.0
		if role == "cb2" {
			dx = 30
		}
		if has("flat") || has("cloud") {
			return zone(role, dx*2, -20)
		}
		return zone(role, dx, -90)
	case "ss", "fs":
		if role == "ss" && has("safety blitz") {
			return config.BehaviorDef{Type: "chase_qb", Blitz: true, Role: role}
		}
		dy := -40.0
		if has("drop") || has("quarters") || has("tampa") || has("high") {
			dy = -120
		}
		dx := -30.0
		if role == "fs" {
			dx = 30
		}
		return zone(role, dx, dy)
	}
	return config.BehaviorDef{Type: "static", Role: role}
}

func zone(role string, dx, dy float64) config.BehaviorDef {
	return config.BehaviorDef{Type: "zone", Anchor: config.Vec2Def{X: dx, Y: dy}, Role: role}
}
