package form

import (
	"time"

	"github.com/google/uuid"
)

// FieldType enumerates the closed set of field kinds a form can carry.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeNumber    FieldType = "number"
	FieldTypeEmail     FieldType = "email"
	FieldTypePassword  FieldType = "password"
	FieldTypeDropdown  FieldType = "dropdown"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeDate      FieldType = "date"
	FieldTypeTime      FieldType = "time"
	FieldTypeRange     FieldType = "range"
	FieldTypeFile      FieldType = "file"
	FieldTypeHeading   FieldType = "heading"
	FieldTypeParagraph FieldType = "paragraph"
)

// Types lists every field kind in display order.
func Types() []FieldType {
	return []FieldType{
		FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeEmail,
		FieldTypePassword, FieldTypeDropdown, FieldTypeCheckbox, FieldTypeRadio,
		FieldTypeDate, FieldTypeTime, FieldTypeRange, FieldTypeFile,
		FieldTypeHeading, FieldTypeParagraph,
	}
}

// Valid reports whether t is a known field kind.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeEmail,
		FieldTypePassword, FieldTypeDropdown, FieldTypeCheckbox, FieldTypeRadio,
		FieldTypeDate, FieldTypeTime, FieldTypeRange, FieldTypeFile,
		FieldTypeHeading, FieldTypeParagraph:
		return true
	default:
		return false
	}
}

// HasValue reports whether fields of this kind collect a value. Headings and
// paragraphs are display-only: they never validate and never submit data.
func (t FieldType) HasValue() bool {
	switch t {
	case FieldTypeHeading, FieldTypeParagraph:
		return false
	default:
		return true
	}
}

// RuleType enumerates the validation constraints a field can declare.
type RuleType string

const (
	RuleRequired  RuleType = "required"
	RuleMinLength RuleType = "minLength"
	RuleMaxLength RuleType = "maxLength"
	RulePattern   RuleType = "pattern"
	RuleMin       RuleType = "min"
	RuleMax       RuleType = "max"
)

// ValidationRule is a single constraint attached to a field. Rules are
// evaluated in declared order and the first failure supplies the field's
// error message. Numeric thresholds are encoded as decimal strings so JSON
// snapshots stay stable across round trips.
type ValidationRule struct {
	Type    RuleType `json:"type"`
	Value   string   `json:"value,omitempty"`
	Message string   `json:"message"`
}

// Option is one choice in a dropdown or radio field. Value is the key stored
// in submitted data and must be unique within the field's option set.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field models a single input or display unit inside a step. The Type is
// fixed at creation; ids are unique across the whole form.
type Field struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	HelperText  string           `json:"helperText,omitempty"`
	Default     any              `json:"defaultValue,omitempty"`
	Options     []Option         `json:"options,omitempty"`
	Validation  []ValidationRule `json:"validation,omitempty"`
	Disabled    bool             `json:"disabled,omitempty"`
	Required    bool             `json:"required,omitempty"`
}

// Step is an ordered page of fields. Order is significant for rendering and
// navigation.
type Step struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Form is the full multi-step document being authored. A form open in the
// builder always holds at least one step. Timestamps are Unix milliseconds.
type Form struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// Response is one end-user submission: field id mapped to submitted value.
// Responses are immutable once created and append-only per form.
type Response struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	Data        map[string]any `json:"data"`
	SubmittedAt int64          `json:"submittedAt"`
}

// NewID returns a fresh opaque identifier. Ids are never reused or rewritten.
func NewID() string {
	return uuid.NewString()
}

// Now returns the current time in Unix milliseconds, the unit used by the
// document timestamps.
func Now() int64 {
	return time.Now().UnixMilli()
}

// NewForm creates an empty form with a single default step.
func NewForm() Form {
	now := Now()
	return Form{
		ID:          NewID(),
		Title:       "Untitled Form",
		Description: "Form description",
		Steps: []Step{
			{ID: NewID(), Title: "Step 1"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindStep returns the step with the given id. Lookup is a linear scan in
// step order.
func (f Form) FindStep(id string) (Step, bool) {
	for _, step := range f.Steps {
		if step.ID == id {
			return step.Clone(), true
		}
	}
	return Step{}, false
}

// StepIndex returns the position of the step with the given id, or -1.
func (f Form) StepIndex(id string) int {
	for i, step := range f.Steps {
		if step.ID == id {
			return i
		}
	}
	return -1
}

// FindField scans steps in order, then fields in order, returning the first
// field with the given id. Field ids are unique across the whole document, so
// the first match is the only match.
func (f Form) FindField(id string) (Field, bool) {
	for _, step := range f.Steps {
		for _, field := range step.Fields {
			if field.ID == id {
				return field.Clone(), true
			}
		}
	}
	return Field{}, false
}
