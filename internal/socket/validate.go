package socket

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateMessage checks a message before it is queued
func validateMessage(msg Message) error {
	switch msg.Command {
	case "":
		return fmt.Errorf("missing command field")
	case CommandReload, CommandList:
		return nil
	case CommandAddRecord:
		if err := validate.Struct(msg.NewRecord()); err != nil {
			return formatValidationError(err)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", msg.Command)
	}
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var msgs []string
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a URL", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
