package interfaces

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx answer from the campaign backend.
type APIError struct {
	Path       string
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// FallbackMessage is used when the error body carries no usable text.
func FallbackMessage(statusCode int, reason string) string {
	return fmt.Sprintf("Request failed with status %d: %s", statusCode, reason)
}

// NetworkError means no response was received at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return "Network request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is a 2xx answer whose body could not be used.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Invalid response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorMessage returns the text surfaced to the user for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.Error()
	}
	return err.Error()
}
