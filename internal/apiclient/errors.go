package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call.
type Kind int

const (
	KindNetwork    Kind = iota + 1 // request never got an answer
	KindAuth                       // 401: bad credentials, expired or invalid token
	KindForbidden                  // 403
	KindValidation                 // other 4xx: payload rejected by the server
	KindNotFound                   // 404
	KindServer                     // 5xx or an unreadable response
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is returned by every Client method that fails.
type Error struct {
	Kind    Kind
	Status  int
	Message string // server-provided message, shown verbatim for validation errors
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("erp api: %s (%d): %s", e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("erp api: %s (%d)", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("erp api: %s: %v", e.Kind, e.Err)
	}
	return "erp api: " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// UserMessage turns err into the text shown in a notification.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch apiErr.Kind {
	case KindValidation, KindNotFound, KindForbidden:
		if apiErr.Message != "" {
			return apiErr.Message
		}
	case KindNetwork:
		return "The ERP service could not be reached. Try again in a moment."
	case KindAuth:
		return "Your session has expired. Please sign in again."
	}
	return fallback
}
