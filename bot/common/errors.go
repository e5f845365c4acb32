package common

import (
	"errors"
	"fmt"

	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "❌ Something went wrong. Please try again later."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error
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

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: genericErrorMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// NewPlatformError reports a Discord API refusal with its text
func NewPlatformError(err error, action string) *BotError {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == 403 {
		return &BotError{
			UserMessage: fmt.Sprintf("❌ I don't have permission to %s!", action),
			LogMessage:  "missing permission to " + action,
			Err:         err,
		}
	}
	return &BotError{
		UserMessage: fmt.Sprintf("❌ Failed to %s: %v", action, err),
		LogMessage:  "failed to " + action,
		Err:         err,
	}
}

// ErrorMessage maps an error to the text shown in chat.
// system is true for errors the user did not cause.
func ErrorMessage(err error) (message string, system bool) {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.UserMessage, botErr.UserMessage == genericErrorMessage
	}

	var cooldownErr *entities.CooldownError
	if errors.As(err, &cooldownErr) {
		return fmt.Sprintf("⏰ You're on cooldown! Try again in %s.", FormatCooldown(cooldownErr.Remaining)), false
	}

	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return "❌ " + validationErr.Message, false
	}

	return genericErrorMessage, true
}

// RespondWithError logs err and posts the mapped message to the channel
func RespondWithError(s *discordgo.Session, channelID string, command string, err error) {
	message, system := ErrorMessage(err)

	fields := log.Fields{
		"command":   command,
		"channelID": channelID,
	}
	if system {
		log.WithFields(fields).WithError(err).Error("Command failed")
	} else {
		log.WithFields(fields).WithError(err).Debug("Command rejected")
	}

	if _, sendErr := s.ChannelMessageSend(channelID, message); sendErr != nil {
		log.WithError(sendErr).Error("Error sending error response")
	}
}
