package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error payload with the given status code.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]any{
		"error": message,
	})
}

// apiMessage writes a JSON success payload carrying a human-readable message.
func apiMessage(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]any{
		"message": message,
	})
}

// validationFailed writes the per-field validation errors collected by a
// handler. Field names in the map match the submitted form field names.
func validationFailed(e *core.RequestEvent, errors map[string]string) error {
	return e.JSON(http.StatusUnprocessableEntity, map[string]any{
		"error":  "Please fix the errors below",
		"errors": errors,
	})
}
