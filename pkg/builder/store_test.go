package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

func strptr(s string) *string { return &s }

func TestUpdateFormMeta(t *testing.T) {
	s := New()
	s.UpdateFormMeta(FormPatch{Title: strptr("Survey"), Description: strptr("About you")})

	doc := s.Form()
	if doc.Title != "Survey" || doc.Description != "About you" {
		t.Fatalf("unexpected meta %q / %q", doc.Title, doc.Description)
	}

	// nil members leave the current values alone
	s.UpdateFormMeta(FormPatch{Description: strptr("Updated")})
	doc = s.Form()
	if doc.Title != "Survey" {
		t.Fatalf("title was clobbered: %q", doc.Title)
	}
	if doc.Description != "Updated" {
		t.Fatalf("description not applied: %q", doc.Description)
	}
}

func TestAddStepSelectsIt(t *testing.T) {
	s := New()
	step := s.AddStep()

	doc := s.Form()
	if len(doc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
	}
	if step.Title != "Step 2" {
		t.Fatalf("unexpected step title %q", step.Title)
	}
	if s.SelectedStepID() != step.ID {
		t.Fatal("new step was not selected")
	}
}

func TestRemoveLastStepRejected(t *testing.T) {
	s := New()
	only := s.Form().Steps[0]

	if err := s.RemoveStep(only.ID); !errors.Is(err, ErrLastStep) {
		t.Fatalf("expected ErrLastStep, got %v", err)
	}
	if got := len(s.Form().Steps); got != 1 {
		t.Fatalf("step count changed to %d", got)
	}
}

func TestRemoveStepSelectsFirstRemaining(t *testing.T) {
	s := New()
	second := s.AddStep()
	first := s.Form().Steps[0]

	if err := s.RemoveStep(second.ID); err != nil {
		t.Fatalf("remove step: %v", err)
	}
	if got := s.SelectedStepID(); got != first.ID {
		t.Fatalf("expected first step selected, got %q", got)
	}
	if got := s.SelectedFieldID(); got != "" {
		t.Fatalf("field selection should be cleared, got %q", got)
	}
}

func TestReorderStep(t *testing.T) {
	s := New()
	s.AddStep()
	s.AddStep()
	before := s.Form()

	if err := s.ReorderStep(0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	after := s.Form()
	wantOrder := []string{before.Steps[1].ID, before.Steps[2].ID, before.Steps[0].ID}
	for i, want := range wantOrder {
		if after.Steps[i].ID != want {
			t.Fatalf("position %d: want %q, got %q", i, want, after.Steps[i].ID)
		}
	}
}

func TestReorderStepSamePositionIsNoOp(t *testing.T) {
	s := New()
	s.AddStep()
	for s.CanUndo() {
		s.Undo()
	}
	canUndo := s.CanUndo()

	if err := s.ReorderStep(0, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if s.CanUndo() != canUndo {
		t.Fatal("identity reorder recorded a history entry")
	}
}

func TestReorderStepOutOfRange(t *testing.T) {
	s := New()
	if err := s.ReorderStep(0, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := s.ReorderStep(-1, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestAddFieldAssignsIDAndSelects(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID

	field, err := s.AddField(form.DefaultField(form.FieldTypeEmail), stepID)
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if field.ID == "" {
		t.Fatal("field id was not assigned")
	}
	if s.SelectedFieldID() != field.ID || s.SelectedStepID() != stepID {
		t.Fatal("field and step were not selected")
	}

	stored, ok := s.Form().FindField(field.ID)
	if !ok {
		t.Fatal("field not present in document")
	}
	if diff := cmp.Diff(field, stored); diff != "" {
		t.Fatalf("stored field mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFieldValidatesInput(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID

	if _, err := s.AddField(form.Field{Type: "carousel"}, stepID); !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}

	dupes := form.Field{
		Type: form.FieldTypeDropdown,
		Options: []form.Option{
			{Label: "One", Value: "same"},
			{Label: "Two", Value: "same"},
		},
	}
	if _, err := s.AddField(dupes, stepID); !errors.Is(err, ErrDuplicateOptionValue) {
		t.Fatalf("expected ErrDuplicateOptionValue, got %v", err)
	}

	if _, err := s.AddField(form.DefaultField(form.FieldTypeText), "missing"); !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("expected ErrStepNotFound, got %v", err)
	}
}

func TestUpdateFieldMergesPatch(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID
	field, err := s.AddField(form.DefaultField(form.FieldTypeText), stepID)
	if err != nil {
		t.Fatalf("add field: %v", err)
	}

	required := true
	if err := s.UpdateField(field.ID, FieldPatch{
		Label:    strptr("Full Name"),
		Required: &required,
	}); err != nil {
		t.Fatalf("update field: %v", err)
	}

	got, _ := s.Form().FindField(field.ID)
	if got.Label != "Full Name" || !got.Required {
		t.Fatalf("patch not applied: %+v", got)
	}
	// untouched members survive
	if got.Placeholder != field.Placeholder {
		t.Fatalf("placeholder was clobbered: %q", got.Placeholder)
	}
	if got.Type != form.FieldTypeText {
		t.Fatalf("type changed to %q", got.Type)
	}
}

func TestUpdateFieldRejectsDuplicateOptions(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID
	field, err := s.AddField(form.DefaultField(form.FieldTypeRadio), stepID)
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	before := s.Form()

	bad := []form.Option{
		{Label: "Yes", Value: "v"},
		{Label: "No", Value: "v"},
	}
	if err := s.UpdateField(field.ID, FieldPatch{Options: &bad}); !errors.Is(err, ErrDuplicateOptionValue) {
		t.Fatalf("expected ErrDuplicateOptionValue, got %v", err)
	}
	if diff := cmp.Diff(before, s.Form()); diff != "" {
		t.Fatalf("rejected patch changed the document (-want +got):\n%s", diff)
	}
}

func TestRemoveFieldClearsSelection(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID
	field, err := s.AddField(form.DefaultField(form.FieldTypeText), stepID)
	if err != nil {
		t.Fatalf("add field: %v", err)
	}

	if err := s.RemoveField(field.ID); err != nil {
		t.Fatalf("remove field: %v", err)
	}
	if _, ok := s.Form().FindField(field.ID); ok {
		t.Fatal("field still present after removal")
	}
	if s.SelectedFieldID() != "" {
		t.Fatal("field selection not cleared")
	}

	if err := s.RemoveField(field.ID); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestReorderField(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID
	a, _ := s.AddField(form.DefaultField(form.FieldTypeText), stepID)
	b, _ := s.AddField(form.DefaultField(form.FieldTypeEmail), stepID)
	c, _ := s.AddField(form.DefaultField(form.FieldTypeNumber), stepID)

	if err := s.ReorderField(stepID, 2, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	fields := s.Form().Steps[0].Fields
	wantOrder := []string{c.ID, a.ID, b.ID}
	for i, want := range wantOrder {
		if fields[i].ID != want {
			t.Fatalf("position %d: want %q, got %q", i, want, fields[i].ID)
		}
	}

	if err := s.ReorderField(stepID, 0, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := s.ReorderField("missing", 0, 1); !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("expected ErrStepNotFound, got %v", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New()
	initial := s.Form()

	s.UpdateFormMeta(FormPatch{Title: strptr("Edited")})
	edited := s.Form()

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	got := s.Form()
	got.UpdatedAt = initial.UpdatedAt
	if diff := cmp.Diff(initial, got); diff != "" {
		t.Fatalf("undo did not restore the document (-want +got):\n%s", diff)
	}

	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if diff := cmp.Diff(edited, s.Form()); diff != "" {
		t.Fatalf("redo did not restore the edit (-want +got):\n%s", diff)
	}
}

func TestEditAfterUndoDiscardsRedo(t *testing.T) {
	s := New()
	s.UpdateFormMeta(FormPatch{Title: strptr("v2")})
	s.UpdateFormMeta(FormPatch{Title: strptr("v3")})

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if !s.CanRedo() {
		t.Fatal("expected redo to be available")
	}

	s.UpdateFormMeta(FormPatch{Title: strptr("v2-branch")})
	if s.CanRedo() {
		t.Fatal("edit after undo should discard the redo stack")
	}
}

func TestSelectionIsNotHistory(t *testing.T) {
	s := New()
	stepID := s.Form().Steps[0].ID
	field, _ := s.AddField(form.DefaultField(form.FieldTypeText), stepID)
	undoable := s.CanUndo()

	if err := s.SelectStep(stepID); err != nil {
		t.Fatalf("select step: %v", err)
	}
	if err := s.SelectField(field.ID); err != nil {
		t.Fatalf("select field: %v", err)
	}
	if s.CanUndo() != undoable {
		t.Fatal("selection produced a history entry")
	}

	// undo restores the document but leaves the cursor alone
	s.Undo()
	if s.SelectedStepID() != stepID {
		t.Fatal("undo rewrote the selection")
	}
}

func TestSelectUnknownIDs(t *testing.T) {
	s := New()
	if err := s.SelectStep("missing"); !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("expected ErrStepNotFound, got %v", err)
	}
	if err := s.SelectField("missing"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}

	// empty string always clears
	if err := s.SelectStep(""); err != nil {
		t.Fatalf("clearing step selection: %v", err)
	}
	if err := s.SelectField(""); err != nil {
		t.Fatalf("clearing field selection: %v", err)
	}
}

func TestDuplicateForksIdentity(t *testing.T) {
	s := New()
	s.UpdateFormMeta(FormPatch{Title: strptr("Original")})
	source := s.Form()

	fork := s.Duplicate()
	if fork.Title != "Original (Copy)" {
		t.Fatalf("unexpected title %q", fork.Title)
	}
	if fork.ID == source.ID {
		t.Fatal("duplicate kept the source form id")
	}
	for i, step := range fork.Steps {
		if step.ID == source.Steps[i].ID {
			t.Fatalf("step %d id was not regenerated", i)
		}
	}
	if s.CanUndo() {
		t.Fatal("duplicate should reset history")
	}
}

func TestLoadTemplateResetsSession(t *testing.T) {
	s := New()
	s.UpdateFormMeta(FormPatch{Title: strptr("WIP")})

	seed := form.Form{
		ID:    "tpl",
		Title: "Contact Form",
		Steps: []form.Step{{ID: "tpl-s1", Title: "Contact", Fields: []form.Field{
			{ID: "tpl-f1", Type: form.FieldTypeText, Label: "Name"},
		}}},
	}
	doc := s.LoadTemplate(seed)

	if doc.ID == seed.ID || doc.Steps[0].ID == "tpl-s1" {
		t.Fatal("template ids leaked into the new form")
	}
	if doc.Title != "Contact Form" {
		t.Fatalf("template content lost: %q", doc.Title)
	}
	if s.CanUndo() {
		t.Fatal("loading a template should reset history")
	}
	if s.SelectedStepID() != "" || s.SelectedFieldID() != "" {
		t.Fatal("selection should be cleared on load")
	}
}

func TestCommitBumpsUpdatedAt(t *testing.T) {
	s := New()
	before := s.Form().UpdatedAt

	s.UpdateFormMeta(FormPatch{Title: strptr("Edited")})
	if got := s.Form().UpdatedAt; got < before {
		t.Fatalf("UpdatedAt went backwards: %d -> %d", before, got)
	}
}
