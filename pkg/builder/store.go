// Package builder owns the document being edited: it applies structural
// mutations, tracks selection, and records every content change in an
// undo/redo history. A Store is an explicit session object; construct one per
// builder session instead of sharing process-wide state.
package builder

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// FormPatch carries the optional top-level fields of an UpdateFormMeta call.
// Nil members are left untouched.
type FormPatch struct {
	Title       *string
	Description *string
}

// StepPatch carries the optional fields of an UpdateStep call.
type StepPatch struct {
	Title *string
}

// FieldPatch carries the optional fields of an UpdateField call. Nil members
// are left untouched; a non-nil pointer to a zero value clears the property.
// Type is deliberately absent: a field's kind is fixed at creation.
type FieldPatch struct {
	Label       *string
	Placeholder *string
	HelperText  *string
	Default     *any
	Options     *[]form.Option
	Validation  *[]form.ValidationRule
	Disabled    *bool
	Required    *bool
}

// Store is the single source of truth for the form being edited. Every
// content mutation replaces the document with a new immutable snapshot,
// bumps UpdatedAt, and commits to history. Selection changes are cursor
// state only: they touch neither the document nor the history.
type Store struct {
	mu              sync.Mutex
	form            form.Form
	selectedStepID  string
	selectedFieldID string
	history         *History
}

// New creates a Store seeded with a fresh empty form.
func New() *Store {
	doc := form.NewForm()
	return &Store{
		form:    doc,
		history: NewHistory(doc),
	}
}

// Form returns a deep copy of the active document.
func (s *Store) Form() form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// SelectedStepID returns the id of the selected step, or "".
func (s *Store) SelectedStepID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedStepID
}

// SelectedFieldID returns the id of the selected field, or "".
func (s *Store) SelectedFieldID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedFieldID
}

// CreateForm discards the current session and starts over with a fresh form.
// History is reset; this is a context switch, not an undoable edit.
func (s *Store) CreateForm() form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := form.NewForm()
	s.form = doc
	s.selectedStepID = ""
	s.selectedFieldID = ""
	s.history.Reset(doc)
	return doc.Clone()
}

// LoadForm replaces the active document with one fetched from storage and
// resets history and selection.
func (s *Store) LoadForm(doc form.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := doc.Clone()
	s.form = clone
	s.selectedStepID = ""
	s.selectedFieldID = ""
	s.history.Reset(clone)
}

// LoadTemplate instantiates a template as a new form: fresh ids, fresh
// timestamps, content cloned. History is reset.
func (s *Store) LoadTemplate(template form.Form) form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := template.CloneWithNewIDs()
	now := form.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	s.form = doc
	s.selectedStepID = ""
	s.selectedFieldID = ""
	s.history.Reset(doc)
	return doc.Clone()
}

// Duplicate forks the active document into a new identity. Every id is
// regenerated so lookups never alias the source form. History is reset.
func (s *Store) Duplicate() form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.form.CloneWithNewIDs()
	doc.Title = s.form.Title + " (Copy)"
	now := form.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	s.form = doc
	s.selectedStepID = ""
	s.selectedFieldID = ""
	s.history.Reset(doc)
	return doc.Clone()
}

// UpdateFormMeta shallow-merges the patch into the form's title and
// description.
func (s *Store) UpdateFormMeta(patch FormPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.form.Clone()
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	s.commit(next)
}

// AddStep appends a step titled after the new step count and selects it.
func (s *Store) AddStep() form.Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.form.Clone()
	step := form.Step{
		ID:    form.NewID(),
		Title: fmt.Sprintf("Step %d", len(next.Steps)+1),
	}
	next.Steps = append(next.Steps, step)
	s.commit(next)
	s.selectedStepID = step.ID
	s.selectedFieldID = ""
	return step.Clone()
}

// UpdateStep shallow-merges the patch into the named step.
func (s *Store) UpdateStep(stepID string, patch StepPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.form.Clone()
	idx := next.StepIndex(stepID)
	if idx < 0 {
		return ErrStepNotFound
	}
	if patch.Title != nil {
		next.Steps[idx].Title = *patch.Title
	}
	s.commit(next)
	return nil
}

// RemoveStep deletes the named step, selecting the first remaining step and
// clearing the field selection. Removing the only step is rejected.
func (s *Store) RemoveStep(stepID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.form.Clone()
	idx := next.StepIndex(stepID)
	if idx < 0 {
		return ErrStepNotFound
	}
	if len(next.Steps) == 1 {
		return ErrLastStep
	}
	next.Steps = append(next.Steps[:idx], next.Steps[idx+1:]...)
	s.commit(next)
	s.selectedStepID = next.Steps[0].ID
	s.selectedFieldID = ""
	return nil
}

// ReorderStep moves the step at from to position to, shifting the steps in
// between. Equal indices are a no-op with no history entry.
func (s *Store) ReorderStep(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.form.Steps)
	if from < 0 || from >= count || to < 0 || to >= count {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	next := s.form.Clone()
	step := next.Steps[from]
	next.Steps = append(next.Steps[:from], next.Steps[from+1:]...)
	next.Steps = append(next.Steps[:to], append([]form.Step{step}, next.Steps[to:]...)...)
	s.commit(next)
	return nil
}

// AddField assigns a fresh id to the field data, appends it to the named
// step, and selects both the field and its step. The field's type must be a
// known kind and its option values must be unique.
func (s *Store) AddField(fieldData form.Field, stepID string) (form.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fieldData.Type.Valid() {
		return form.Field{}, ErrUnknownFieldType
	}
	if hasDuplicateOptionValues(fieldData.Options) {
		return form.Field{}, ErrDuplicateOptionValue
	}

	next := s.form.Clone()
	idx := next.StepIndex(stepID)
	if idx < 0 {
		return form.Field{}, ErrStepNotFound
	}

	field := fieldData.Clone()
	field.ID = form.NewID()
	next.Steps[idx].Fields = append(next.Steps[idx].Fields, field)
	s.commit(next)
	s.selectedStepID = stepID
	s.selectedFieldID = field.ID
	return field.Clone(), nil
}

// UpdateField locates the field by scanning steps in order and shallow-merges
// the patch. A patch whose option set repeats a value is rejected before any
// state changes.
func (s *Store) UpdateField(fieldID string, patch FieldPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Options != nil && hasDuplicateOptionValues(*patch.Options) {
		return ErrDuplicateOptionValue
	}

	next := s.form.Clone()
	field := findField(&next, fieldID)
	if field == nil {
		return ErrFieldNotFound
	}

	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.HelperText != nil {
		field.HelperText = *patch.HelperText
	}
	if patch.Default != nil {
		field.Default = *patch.Default
	}
	if patch.Options != nil {
		field.Options = append([]form.Option(nil), (*patch.Options)...)
	}
	if patch.Validation != nil {
		field.Validation = append([]form.ValidationRule(nil), (*patch.Validation)...)
	}
	if patch.Disabled != nil {
		field.Disabled = *patch.Disabled
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}

	s.commit(next)
	return nil
}

// RemoveField deletes the field by id and clears the field selection.
func (s *Store) RemoveField(fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.form.Clone()
	for si := range next.Steps {
		fields := next.Steps[si].Fields
		for fi := range fields {
			if fields[fi].ID != fieldID {
				continue
			}
			next.Steps[si].Fields = append(fields[:fi], fields[fi+1:]...)
			s.commit(next)
			s.selectedFieldID = ""
			return nil
		}
	}
	return ErrFieldNotFound
}

// ReorderField moves a field within one step's field list. Equal indices are
// a no-op with no history entry.
func (s *Store) ReorderField(stepID string, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.form.StepIndex(stepID)
	if idx < 0 {
		return ErrStepNotFound
	}
	count := len(s.form.Steps[idx].Fields)
	if from < 0 || from >= count || to < 0 || to >= count {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	next := s.form.Clone()
	fields := next.Steps[idx].Fields
	field := fields[from]
	fields = append(fields[:from], fields[from+1:]...)
	fields = append(fields[:to], append([]form.Field{field}, fields[to:]...)...)
	next.Steps[idx].Fields = fields
	s.commit(next)
	return nil
}

// SelectStep moves the step cursor and clears the field cursor. Pass "" to
// clear the selection. Selection is not recorded in history.
func (s *Store) SelectStep(stepID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stepID != "" && s.form.StepIndex(stepID) < 0 {
		return ErrStepNotFound
	}
	s.selectedStepID = stepID
	s.selectedFieldID = ""
	return nil
}

// SelectField moves the field cursor. Pass "" to clear the selection.
func (s *Store) SelectField(fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fieldID != "" {
		if _, ok := s.form.FindField(fieldID); !ok {
			return ErrFieldNotFound
		}
	}
	s.selectedFieldID = fieldID
	return nil
}

// Undo steps the document back one snapshot. It reports false when the past
// is empty.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.form = doc
	return true
}

// Redo reapplies the most recently undone snapshot. It reports false when
// the future is empty.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.form = doc
	return true
}

// CanUndo reports whether an undo would change the document.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo would change the document.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// commit installs the next snapshot as the active document, bumps UpdatedAt,
// and records it in history. Callers hold the mutex.
func (s *Store) commit(next form.Form) {
	next.UpdatedAt = form.Now()
	s.form = next
	s.history.Commit(next)
}

// findField returns a pointer into the document's own field storage; the
// document must be a private clone.
func findField(doc *form.Form, fieldID string) *form.Field {
	for si := range doc.Steps {
		for fi := range doc.Steps[si].Fields {
			if doc.Steps[si].Fields[fi].ID == fieldID {
				return &doc.Steps[si].Fields[fi]
			}
		}
	}
	return nil
}

func hasDuplicateOptionValues(options []form.Option) bool {
	if len(options) < 2 {
		return false
	}
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		if _, exists := seen[option.Value]; exists {
			return true
		}
		seen[option.Value] = struct{}{}
	}
	return false
}
