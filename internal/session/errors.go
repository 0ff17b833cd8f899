package session

import (
	"errors"
	"fmt"

	"erp-console/internal/apiclient"
)

type AuthErrorKind int

const (
	InvalidCredentials AuthErrorKind = iota + 1
	NetworkFailure
	ServerError
)

func (k AuthErrorKind) String() string {
	switch k {
	case InvalidCredentials:
		return "invalid_credentials"
	case NetworkFailure:
		return "network_failure"
	case ServerError:
		return "server_error"
	}
	return "unknown"
}

// AuthError is returned by Store.Login.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("session: %s: %v", e.Kind, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Message is the text shown on the login form.
func (e *AuthError) Message() string {
	switch e.Kind {
	case InvalidCredentials:
		if msg := apiclient.UserMessage(e.Err, ""); msg != "" && apiclient.KindOf(e.Err) != apiclient.KindAuth {
			return msg
		}
		return "Invalid email or password."
	case NetworkFailure:
		return "The ERP service could not be reached. Try again in a moment."
	default:
		return "Sign-in failed on the server. Try again later."
	}
}

func classify(err error) *AuthError {
	switch apiclient.KindOf(err) {
	case apiclient.KindAuth, apiclient.KindValidation, apiclient.KindForbidden, apiclient.KindNotFound:
		return &AuthError{Kind: InvalidCredentials, Err: err}
	case apiclient.KindNetwork:
		return &AuthError{Kind: NetworkFailure, Err: err}
	}
	return &AuthError{Kind: ServerError, Err: err}
}

// IsKind reports whether err is an *AuthError of kind k.
func IsKind(err error, k AuthErrorKind) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Kind == k
}
