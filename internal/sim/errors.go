package sim

import "errors"

var (
	ErrUnknownBehavior = errors.New("sim: unknown behavior")
	ErrNilPlay         = errors.New("sim: nil play")
)
