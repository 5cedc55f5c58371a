package playbook

import (
	"strings"

	"dailyread/internal/geom"
)

const upfield = -120.0

// RouteShape returns the waypoints of a named route run from start. Unknown
// names run a straight vertical. The result is freshly allocated.
func RouteShape(name string, start geom.Vec2) []geom.Vec2 {
	x, y := start.X, start.Y
	up := upfield
	p := func(px, py float64) geom.Vec2 { return geom.Vec2{X: px, Y: py} }
	switch strings.ToLower(strings.ReplaceAll(name, " ", "_")) {
	case "curl":
		return []geom.Vec2{p(x, y), p(x, y+up), p(x-10, y+up+20)}
	case "drag":
		return []geom.Vec2{p(x, y), p(x+80, y-40), p(x+160, y-50)}
	case "slant":
		return []geom.Vec2{p(x, y), p(x+80, y+up+20), p(x+140, y+up+40)}
	case "corner":
		return []geom.Vec2{p(x, y), p(x, y+up+20), p(x+120, y+up-40)}
	case "streak":
		return []geom.Vec2{p(x, y), p(x, y+up-80), p(x, y+up-180)}
	case "out":
		return []geom.Vec2{p(x, y), p(x, y+up), p(x+120, y+up)}
	case "post":
		return []geom.Vec2{p(x, y), p(x, y+up-20), p(x+80, y+up-120)}
	case "flat":
		return []geom.Vec2{p(x, y), p(x+90, y-10)}
	case "wheel":
		return []geom.Vec2{p(x, y), p(x+60, y-40), p(x+100, y+up-120)}
	case "swing_left":
		return []geom.Vec2{p(x, y), p(x-90, y-20)}
	case "swing_right":
		return []geom.Vec2{p(x, y), p(x+90, y-20)}
	case "seam":
		return []geom.Vec2{p(x, y), p(x+20, y+up-120)}
	case "stop_n_go":
		return []geom.Vec2{p(x, y), p(x, y+up+10), p(x, y+up-120)}
	case "jerk":
		return []geom.Vec2{p(x, y), p(x+50, y-40), p(x-10, y-60)}
	case "double_out":
		return []geom.Vec2{p(x, y), p(x, y+up), p(x+60, y+up), p(x+120, y+up-20)}
	case "angle":
		return []geom.Vec2{p(x, y), p(x+30, y-30), p(x+90, y+up+20)}
	case "sail":
		return []geom.Vec2{p(x, y), p(x+40, y+up-10), p(x+140, y+up-40)}
	case "pivot":
		return []geom.Vec2{p(x, y), p(x+50, y-30), p(x-40, y-20)}
	case "sluggo":
		return []geom.Vec2{p(x, y), p(x+60, y+up+20), p(x+120, y+up-120)}
	case "chair":
		return []geom.Vec2{p(x, y), p(x+40, y-20), p(x+80, y+up-120)}
	case "block":
		return []geom.Vec2{p(x, y), p(x, y-10)}
	case "check_release":
		return []geom.Vec2{p(x, y), p(x, y-20), p(x+40, y-60)}
	default:
		return []geom.Vec2{p(x, y), p(x, y+up)}
	}
}

// RouteID is the play-table id for a catalog route name.
func RouteID(name string) string { return strings.ToUpper(name) }

// RouteName is the display name for a catalog route.
func RouteName(name string) string { return titleWords(strings.ReplaceAll(name, "_", " ")) }
