package app

import "errors"

var (
	// ErrInvalidInput marks requests missing a required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsernameExists marks a duplicate registration.
	ErrUsernameExists = errors.New("username already exists")
	// ErrInvalidCredential marks a failed login.
	ErrInvalidCredential = errors.New("invalid username or password")
	// ErrNoContent means the user has no stored corpus to answer from.
	ErrNoContent = errors.New("no content found for this user")
	// ErrRecordNotFound means a history record does not exist, is not
	// owned by the user, or the deletion kind is unknown.
	ErrRecordNotFound = errors.New("history record not found")
	// ErrModel wraps an upstream language-model failure; the upstream
	// message is preserved for the caller.
	ErrModel = errors.New("language model request failed")
)
