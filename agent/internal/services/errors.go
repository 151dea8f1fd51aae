package services

import (
	"errors"
	"fmt"
	"strings"
)

// UpstreamError wraps a remote service failure: a transport error or a
// success:false envelope. Treated identically either way, never retried.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// ErrInvalidTimeframe is returned before any network call when a trending
// timeframe is not in ValidTimeframes.
var ErrInvalidTimeframe = fmt.Errorf("invalid timeframe, must be one of: %s", strings.Join(ValidTimeframes, ", "))

// IsUpstream reports whether err originated from a remote service failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// UpstreamMessage extracts the upstream-supplied message from err, falling
// back to err.Error().
func UpstreamMessage(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
