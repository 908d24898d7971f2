package builder

import "errors"

var (
	// ErrStepNotFound reports a mutation addressed to a step id that is not
	// present in the active document.
	ErrStepNotFound = errors.New("builder: step not found")

	// ErrFieldNotFound reports a mutation addressed to a field id that is not
	// present in any step.
	ErrFieldNotFound = errors.New("builder: field not found")

	// ErrLastStep rejects removal of the only remaining step. A form open in
	// the builder always keeps at least one step.
	ErrLastStep = errors.New("builder: cannot remove the last step")

	// ErrIndexOutOfRange rejects reorder operations whose source or
	// destination index falls outside the sequence.
	ErrIndexOutOfRange = errors.New("builder: index out of range")

	// ErrDuplicateOptionValue rejects a field patch whose option set repeats
	// a value. Option values key submitted data and must be unique within a
	// field.
	ErrDuplicateOptionValue = errors.New("builder: duplicate option value")

	// ErrUnknownFieldType rejects inserting a field whose type is not part of
	// the closed kind set.
	ErrUnknownFieldType = errors.New("builder: unknown field type")
)
