package playbook

import (
	"dailyread/internal/config"
	"dailyread/internal/geom"
)

// RouteBook resolves a play's route ids to paths. Routes with explicit points
// are fixed; the rest are shaped from the catalog at the runner's start.
type RouteBook struct {
	byID  map[string]config.RouteDef
	order []string
}

func NewRouteBook(routes []config.RouteDef) *RouteBook {
	rb := &RouteBook{byID: make(map[string]config.RouteDef, len(routes))}
	for _, r := range routes {
		if r.ID == "" {
			continue
		}
		if _, dup := rb.byID[r.ID]; !dup {
			rb.order = append(rb.order, r.ID)
		}
		pts := make([]config.Vec2Def, len(r.Points))
		copy(pts, r.Points)
		r.Points = pts
		rb.byID[r.ID] = r
	}
	return rb
}

func (rb *RouteBook) Has(id string) bool {
	if rb == nil {
		return false
	}
	_, ok := rb.byID[id]
	return ok
}

func (rb *RouteBook) Get(id string) (config.RouteDef, bool) {
	if rb == nil {
		return config.RouteDef{}, false
	}
	r, ok := rb.byID[id]
	return r, ok
}

// IDs lists route ids in play order.
func (rb *RouteBook) IDs() []string {
	if rb == nil {
		return nil
	}
	return append([]string(nil), rb.order...)
}

// Shape returns a fresh path for id run from start.
func (rb *RouteBook) Shape(id string, start geom.Vec2) ([]geom.Vec2, bool) {
	r, ok := rb.Get(id)
	if !ok {
		return nil, false
	}
	if len(r.Points) == 0 {
		return RouteShape(id, start), true
	}
	out := make([]geom.Vec2, len(r.Points))
	for i, p := range r.Points {
		out[i] = geom.Vec2{X: p.X, Y: p.Y}
	}
	return out, true
}

// Cycle steps through the play's routes from current by dir.
func (rb *RouteBook) Cycle(current string, dir int) string {
	ids := rb.IDs()
	if len(ids) == 0 {
		return ""
	}
	idx := -1
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}
	n := len(ids)
	return ids[((idx+dir)%n+n)%n]
}
