package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type MarketPulseError struct {
	Message string
	Cause   error
}

func (e *MarketPulseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MarketPulseError) Unwrap() error {
	return e.Cause
}

// Distinct error types for classification with errors.As
type ConfigurationError struct{ MarketPulseError }

// TransportError reports a network failure, timeout or non-success status.
type TransportError struct {
	MarketPulseError
	StatusCode int
}

// ProviderSchemaError reports a provider payload missing required fields.
type ProviderSchemaError struct{ MarketPulseError }

// InsufficientDataError reports an intraday series below the density floor.
type InsufficientDataError struct {
	MarketPulseError
	Points   int
	Required int
}

// CatastrophicAggregationError reports an unrecoverable failure while
// coordinating the snapshot fan-out.
type CatastrophicAggregationError struct{ MarketPulseError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewConfigurationError(msg string, cause error) *ConfigurationError {
	return &ConfigurationError{MarketPulseError{Message: msg, Cause: cause}}
}

func NewTransportError(msg string, status int, cause error) *TransportError {
	return &TransportError{MarketPulseError: MarketPulseError{Message: msg, Cause: cause}, StatusCode: status}
}

func NewProviderSchemaError(msg string, cause error) *ProviderSchemaError {
	return &ProviderSchemaError{MarketPulseError{Message: msg, Cause: cause}}
}

func NewInsufficientDataError(symbol string, points, required int) *InsufficientDataError {
	return &InsufficientDataError{
		MarketPulseError: MarketPulseError{
			Message: fmt.Sprintf("insufficient data for %s: %d points, need %d", symbol, points, required),
		},
		Points:   points,
		Required: required,
	}
}

func NewCatastrophicAggregationError(msg string, cause error) *CatastrophicAggregationError {
	return &CatastrophicAggregationError{MarketPulseError{Message: msg, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsProviderError reports whether err is a transport or schema failure.
func IsProviderError(err error) bool {
	var te *TransportError
	var se *ProviderSchemaError
	return errors.As(err, &te) || errors.As(err, &se)
}

func IsInsufficientData(err error) bool {
	var ie *InsufficientDataError
	return errors.As(err, &ie)
}

func IsCatastrophic(err error) bool {
	var ce *CatastrophicAggregationError
	return errors.As(err, &ce)
}
