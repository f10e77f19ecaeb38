package coingecko

import (
	"errors"
	"fmt"
)

// TransportError reports a failed exchange with the CoinGecko API: the
// provider was unreachable, timed out, answered with a non-2xx status, or
// returned a body that could not be decoded. Status is zero when no HTTP
// response was received.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("coingecko: %s: http status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("coingecko: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParamError reports a request parameter outside the provider's accepted
// range. It is not a TransportError: no request is issued.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("coingecko: invalid %s: %s", e.Field, e.Reason)
}

// IsTransport reports whether err originated from a failed provider exchange.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
