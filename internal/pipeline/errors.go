package pipeline

import (
	"fmt"

	"github.com/aristath/georisk/internal/domain"
)

// InputError is the only error class the pipeline ever returns to a
// caller, per SPEC_FULL.md §7's taxonomy — TransientExternal,
// DataUnavailable, and CacheMiss are all absorbed internally by the
// collaborator that encounters them and replaced with a documented
// fallback.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Message)
}

func validateHolding(h domain.Holding) error {
	if h.Name == "" {
		return &InputError{Field: "name", Message: "holding name is required"}
	}
	if h.Region == "" && h.Country == "" {
		return &InputError{Field: "region", Message: "holding must specify a country or region"}
	}
	return nil
}
