package geom

import "math"

type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dist(b Vec2) float64  { return a.Sub(b).Len() }
func FromAngle(rad float64) Vec2    { return Vec2{math.Cos(rad), math.Sin(rad)} }

// StepToward moves from toward to by at most step and never past it.
func StepToward(from, to Vec2, step float64) Vec2 {
	diff := to.Sub(from)
	d := diff.Len()
	if d == 0 || step <= 0 {
		return from
	}
	if step > d {
		step = d
	}
	return from.Add(diff.Norm().Scale(step))
}
