// Package errors provides domain-specific error types for the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
//
// The lifecycle surface itself reports outcomes as values (an absent handle,
// a boolean load status) per the plugin protocol; these types serve the host
// side and diagnostics, where Go errors are the right shape.
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert
// themselves to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
// Custom error types are recognized and categorized; anything else is
// reported as "internal".
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// ResolutionError reports that the host could not map an address back to a
// plugin handle.
type ResolutionError struct {
	Address entities.Address
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no plugin owns address 0x%x", uint64(e.Address))
}

// ToErrorDetail implements DetailedError.
func (e *ResolutionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "resolution"}
}

// LoadError reports why a plugin failed to load.
type LoadError struct {
	Err    error
	Handle entities.PluginHandle
	Reason string
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load failed for handle %#x: %s: %v", uint64(e.Handle), e.Reason, e.Err)
	}
	return fmt.Sprintf("load failed for handle %#x: %s", uint64(e.Handle), e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *LoadError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "load", Code: e.Reason}
}

// TimerError reports a timer operation against an unknown timer or handle.
type TimerError struct {
	Op string // "add", "remove", "process"
	ID uint32
}

func (e *TimerError) Error() string {
	return fmt.Sprintf("timer %s failed for timer %d", e.Op, e.ID)
}

// ToErrorDetail implements DetailedError.
func (e *TimerError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "timer", Code: e.Op}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: e.Field}
}

// WireFormatError represents a wire format encoding/decoding error between
// host and guest.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "wire", Code: e.Operation}
}
