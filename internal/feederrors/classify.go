package feederrors

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Classify converts an arbitrary error raised during a provider operation
// into a FeedError. The second return value reports whether the error was
// already part of the taxonomy or matched a known failure pattern; callers
// log unclassified errors at a higher severity since they indicate a gap.
func Classify(provider string, err error) (*FeedError, bool) {
	if err == nil {
		return nil, false
	}

	var fe *FeedError
	if errors.As(err, &fe) {
		return fe, true
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProviderUnavailableError(provider, "upstream call timed out", err), true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewProviderUnavailableError(provider, "upstream network failure", err), true
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "Unauthorized"):
		return NewAuthenticationError(provider, "upstream rejected credentials", err), true
	case strings.Contains(msg, "429") || strings.Contains(msg, "Too Many Requests"):
		return NewRateLimitError(provider, "upstream rate limit hit", err), true
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "timeout"):
		return NewProviderUnavailableError(provider, "upstream unreachable", err), true
	case strings.Contains(msg, "unmarshal") || strings.Contains(msg, "unexpected end of JSON"):
		return NewInvalidResponseError(provider, "upstream returned unparsable data", err), true
	}

	return NewProviderUnavailableError(provider, "unexpected provider failure", err), false
}
