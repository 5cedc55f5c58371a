package main

import (
	"fmt"
	"strconv"
	"strings"

	"dailyread/internal/sim"
)

// parseRoutes reads "wr1=SLANT,te=FLAT". An entry without "=" picks the
// controlled entity's route.
func parseRoutes(s string) ([]sim.Selection, error) {
	var out []sim.Selection
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, route, ok := strings.Cut(part, "=")
		if !ok {
			id, route = "", part
		}
		route = strings.TrimSpace(route)
		if route == "" {
			return nil, fmt.Errorf("route selection %q: empty route", part)
		}
		out = append(out, sim.Selection{EntityID: strings.TrimSpace(id), RouteID: route})
	}
	return out, nil
}

// parseThrow reads "wr1@2.5".
func parseThrow(s string) (string, float64, error) {
	if s == "" {
		return "", 0, nil
	}
	id, at, ok := strings.Cut(s, "@")
	if !ok || id == "" {
		return "", 0, fmt.Errorf("throw %q: want receiver@seconds", s)
	}
	t, err := strconv.ParseFloat(at, 64)
	if err != nil || t < 0 {
		return "", 0, fmt.Errorf("throw %q: bad time", s)
	}
	return id, t, nil
}
