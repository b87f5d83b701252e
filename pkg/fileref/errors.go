package fileref

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks map-validation failures from FromMap.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a map that cannot be deserialized into a Ref.
// The offending map is carried for diagnostics.
type ArgumentError struct {
	Reason string
	Map    map[string]any
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid file reference map: %s", e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
