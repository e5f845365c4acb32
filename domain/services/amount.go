package services

import (
	"strconv"
	"strings"

	"guildbot/domain/entities"
)

// ParseAmount turns a user supplied amount into a positive integer.
// "all" resolves to available; emptyMsg is returned when that is zero.
func ParseAmount(arg string, available int64, emptyMsg string) (int64, error) {
	arg = strings.TrimSpace(strings.ToLower(arg))
	if arg == "" {
		return 0, entities.NewValidationError("Please specify an amount!")
	}

	if arg == "all" {
		if available <= 0 {
			return 0, entities.NewValidationError("%s", emptyMsg)
		}
		return available, nil
	}

	amount, err := strconv.ParseInt(strings.ReplaceAll(arg, ",", ""), 10, 64)
	if err != nil {
		return 0, entities.NewValidationError("Please enter a valid amount!")
	}
	if amount <= 0 {
		return 0, entities.NewValidationError("Amount must be positive!")
	}
	return amount, nil
}
