package feederrors

import (
	"errors"
	"fmt"
)

// Error codes for the external feed taxonomy.
const (
	CodeConfiguration        = "CONFIGURATION"
	CodeAuthentication       = "AUTHENTICATION"
	CodeRateLimited          = "RATE_LIMITED"
	CodeProviderUnavailable  = "PROVIDER_UNAVAILABLE"
	CodePropertyNotFound     = "PROPERTY_NOT_FOUND"
	CodeInvalidResponse      = "INVALID_RESPONSE"
	CodeUnsupportedOperation = "UNSUPPORTED_OPERATION"
)

// FeedError is the single error category raised by providers and the
// cache/manager plumbing around them. Code identifies the failure class,
// Provider names the upstream integration that raised it.
type FeedError struct {
	Code     string
	Provider string
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the original error for error chaining.
func (e *FeedError) Unwrap() error {
	return e.Err
}

func newError(code, provider, message string, err error) *FeedError {
	return &FeedError{Code: code, Provider: provider, Message: message, Err: err}
}

func NewConfigurationError(provider, message string, err error) *FeedError {
	return newError(CodeConfiguration, provider, message, err)
}

func NewAuthenticationError(provider, message string, err error) *FeedError {
	return newError(CodeAuthentication, provider, message, err)
}

func NewRateLimitError(provider, message string, err error) *FeedError {
	return newError(CodeRateLimited, provider, message, err)
}

func NewProviderUnavailableError(provider, message string, err error) *FeedError {
	return newError(CodeProviderUnavailable, provider, message, err)
}

func NewPropertyNotFoundError(provider, reference string) *FeedError {
	return newError(CodePropertyNotFound, provider, fmt.Sprintf("property %s not found", reference), nil)
}

func NewInvalidResponseError(provider, message string, err error) *FeedError {
	return newError(CodeInvalidResponse, provider, message, err)
}

func NewUnsupportedOperationError(provider, operation string) *FeedError {
	return newError(CodeUnsupportedOperation, provider, fmt.Sprintf("operation %s is not supported", operation), nil)
}

// IsCode reports whether err is a FeedError carrying the given code.
func IsCode(err error, code string) bool {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// IsNotFound reports whether err represents a missing property.
func IsNotFound(err error) bool {
	return IsCode(err, CodePropertyNotFound)
}

// IsConfiguration reports whether err is a configuration failure. These
// propagate to the caller instead of degrading into an empty result.
func IsConfiguration(err error) bool {
	return IsCode(err, CodeConfiguration)
}
