package collector

import (
	"errors"
	"fmt"
)

// ErrNoData signals a well-formed response with no price points for the
// requested date. Distinct from transport or parse failures: the upstream
// simply has nothing yet, so the caller may try again later.
var ErrNoData = errors.New("no day-ahead prices for requested date")

// ConfigurationError reports a missing zone mapping or API credential.
// Fatal for that entity; not retried.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
