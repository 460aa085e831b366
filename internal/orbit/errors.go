package orbit

import "errors"

var (
	// ErrInvalidArgument indicates a universe size outside 1..MaxN.
	ErrInvalidArgument = errors.New("orbit: universe size out of range")
	// ErrUnknownClassifier indicates a classifier name that is not registered.
	ErrUnknownClassifier = errors.New("orbit: unknown classifier")
)
