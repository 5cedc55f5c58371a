package config

import "errors"

var (
	ErrMissingID   = errors.New("config: missing id")
	ErrDuplicateID = errors.New("config: duplicate id")
)
