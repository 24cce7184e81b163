package common

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to the user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
	Context     any    // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (bad input, expired access, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: "❌ Something went wrong. Please try again later.",
		LogMessage:  logMessage,
		Err:         err,
	}
}

// HandleError logs an error and converts it into the reply shown to the user
func HandleError(userID, state string, err error) []Reply {
	var botErr *BotError
	if errors.As(err, &botErr) {
		entry := log.WithFields(log.Fields{
			"user_id":      userID,
			"state":        state,
			"error":        botErr.Error(),
			"user_message": botErr.UserMessage,
			"context":      botErr.Context,
		})
		if botErr.Err != nil {
			entry.Error(botErr.LogMessage)
		} else {
			entry.Info(botErr.LogMessage)
		}
		return []Reply{Text(botErr.UserMessage)}
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"state":   state,
		"error":   err.Error(),
	}).Error("Unexpected error in bot handler")
	return []Reply{Text("❌ Something went wrong. Please try again later.")}
}
