package domain

import "errors"

var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrAlreadySignedUp     = errors.New("student already signed up")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrEmailRequired       = errors.New("email is required")
)
