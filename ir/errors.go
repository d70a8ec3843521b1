package ir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DuplicateEntryError reports an entry name declared twice within one enum.
type DuplicateEntryError struct {
	Name string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("multiple definitions of entry %q found", e.Name)
}

// InvalidIntegerError reports an entry value that is neither empty, an
// earlier entry's name, nor a base-10 integer.
type InvalidIntegerError struct {
	Name  string
	Value string
}

func (e *InvalidIntegerError) Error() string {
	return fmt.Sprintf("could not interpret integer from enum value %q for entry %q", e.Value, e.Name)
}

// ValidationError reports a definition that cannot be finalized: missing
// class name, package or entries, or a fixed type outside the supported set.
type ValidationError struct {
	Enum   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("enum %s: %s", e.Enum, e.Reason)
}

// newValidationError maps validator failures onto a single ValidationError
// with a readable reason per failed field.
func newValidationError(d *EnumDefinition, err error) *ValidationError {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &ValidationError{Enum: d.ClassName(), Reason: err.Error()}
	}

	reasons := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		switch ve.StructField() {
		case "Package":
			reasons = append(reasons, "missing package (no ENUM_PACKAGE directive?)")
		case "FixedType":
			reasons = append(reasons, fmt.Sprintf("fixed type %q not supported", d.FixedType))
		case "Entries":
			reasons = append(reasons, "no entries")
		default:
			reasons = append(reasons, fmt.Sprintf("%s failed %s validation", ve.StructField(), ve.Tag()))
		}
	}
	return &ValidationError{Enum: d.ClassName(), Reason: strings.Join(reasons, "; ")}
}
