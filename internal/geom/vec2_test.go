package geom

import (
	"math"
	"testing"
)

func TestNormZeroVector(t *testing.T) {
	if got := (Vec2{}).Norm(); got != (Vec2{}) {
		t.Fatalf("Norm of zero = %+v, want zero", got)
	}
}

func TestStepTowardClampsAtTarget(t *testing.T) {
	got := StepToward(Vec2{0, 0}, Vec2{3, 4}, 10)
	if got != (Vec2{3, 4}) {
		t.Fatalf("StepToward overshoot: %+v", got)
	}
	got = StepToward(Vec2{0, 0}, Vec2{3, 4}, 2.5)
	if math.Abs(got.X-1.5) > 1e-9 || math.Abs(got.Y-2) > 1e-9 {
		t.Fatalf("StepToward partial step = %+v", got)
	}
	if got := StepToward(Vec2{1, 1}, Vec2{5, 5}, 0); got != (Vec2{1, 1}) {
		t.Fatalf("zero step moved: %+v", got)
	}
}
