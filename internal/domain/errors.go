package domain

import "errors"

var (
	// ErrSessionNotFound indicates the requested conversation session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmptyConversation indicates an operation that requires at least one message.
	ErrEmptyConversation = errors.New("conversation has no messages")
)
