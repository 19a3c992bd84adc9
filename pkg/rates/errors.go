package rates

import (
	"errors"
	"fmt"
)

// ProviderError represents an error from the remote tariff service.
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for ProviderError.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *ProviderError) WithCause(err error) *ProviderError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// Sentinel errors for the calculation pipeline.
var (
	// ErrMissingCredentials indicates the provider access/secret keys are not set.
	ErrMissingCredentials = errors.New("missing api credentials")

	// ErrMissingOrigin indicates the store origin region id is not configured.
	ErrMissingOrigin = errors.New("missing origin region id")

	// ErrInvalidPostcode indicates the destination postcode is empty or unusable.
	ErrInvalidPostcode = errors.New("invalid destination postcode")

	// ErrInvalidPackage indicates the aggregate package exceeds the carrier limits.
	ErrInvalidPackage = errors.New("invalid package dimensions")

	// ErrRegionNotFound indicates destination lookup exhausted all match strategies.
	ErrRegionNotFound = errors.New("destination region not found")

	// ErrNoRates indicates the tariff call failed or returned no usable rates.
	ErrNoRates = errors.New("no shipping rates available")
)

// IsUserFacing reports whether the error should surface as a checkout
// notice. Resolution and quote failures are absorbed into the fallback
// rate instead.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrMissingOrigin) ||
		errors.Is(err, ErrInvalidPostcode) ||
		errors.Is(err, ErrInvalidPackage)
}
