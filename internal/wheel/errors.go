package wheel

import "errors"

var (
	// ErrInvalidWidth indicates a configuration width outside 1..MaxWidth.
	ErrInvalidWidth = errors.New("wheel: width out of range")
	// ErrInvalidLength indicates a bit sequence whose length differs from the declared width.
	ErrInvalidLength = errors.New("wheel: bit sequence length does not match width")
	// ErrInvalidBit indicates a character other than '0' or '1' in a bit string.
	ErrInvalidBit = errors.New("wheel: bit string may only contain '0' and '1'")
	// ErrUnknownAction indicates an action name that is not registered.
	ErrUnknownAction = errors.New("wheel: unknown action")
)
