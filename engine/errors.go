package engine

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid application config")
	ErrInvalidStage    = errors.New("engine is not in the right stage")
	ErrEventSystem     = errors.New("failed to initialize the event system")
	ErrUnexpectedAsset = errors.New("unexpected asset")
)
