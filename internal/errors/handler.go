package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when printing an error.
// A nil ColorProvider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code it should produce.
//
// Parameters:
//   - err: The error to classify. A nil error maps to ExitSuccess.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		memoryErr     MemoryError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr), errors.As(err, &validationErr), errors.As(err, &memoryErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleClassificationError reports a failed classification on out and
// returns the matching exit code.
//
// Parameters:
//   - err: The error returned by the classifier. Nil yields ExitSuccess.
//   - duration: How long the run lasted before failing. Zero omits it.
//   - out: The writer receiving the message.
//   - colors: Optional color provider.
//
// Returns:
//   - int: The exit code for the error.
func HandleClassificationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCodeFor(err)
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sClassification timed out%s: %v%s\n", yellow, suffix, err, reset)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sClassification canceled%s.%s\n", yellow, suffix, reset)
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sInvalid request: %v%s\n", red, err, reset)
	default:
		fmt.Fprintf(out, "%sClassification failed%s: %v%s\n", red, suffix, err, reset)
	}
	return code
}
