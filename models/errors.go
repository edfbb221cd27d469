package models

import "strings"

// AuthenticationError means the service rejected the supplied credentials.
// Message carries the service's own detail text when it sent one.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// RegistrationError means the service rejected a new-user profile. The
// service may report a single message or a list of field-level validation
// messages; both are flattened into Messages.
type RegistrationError struct {
	Messages []string
}

func (e *RegistrationError) Error() string {
	if len(e.Messages) == 0 {
		return "registration failed"
	}
	return strings.Join(e.Messages, "; ")
}

// NetworkError wraps a transport failure: the request never produced a
// response at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return "network error during " + e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError means a query matched no records. Callers generally treat it
// as an empty result rather than a failure.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}
