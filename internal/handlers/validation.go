package handlers

import (
	"fmt"
	"strings"
)

// Required keys of a trend-capable QR payload.
var requiredPayloadKeys = []string{"EtsyPlannerURL", "AILesson", "trends"}

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// validate collects errors and returns a *ValidationError if any exist.
func validate(checks ...func() string) error {
	var errs []string
	for _, check := range checks {
		if msg := check(); msg != "" {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func requireNonEmpty(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", field)
	}
	return ""
}

// validatePayloadKeys reports every required payload key absent from the
// decoded object, so a single failure names all offending fields at once.
func validatePayloadKeys(present map[string]bool) error {
	checks := make([]func() string, 0, len(requiredPayloadKeys))
	for _, key := range requiredPayloadKeys {
		key := key
		checks = append(checks, func() string {
			if !present[key] {
				return fmt.Sprintf("%s is required", key)
			}
			return ""
		})
	}
	return validate(checks...)
}
