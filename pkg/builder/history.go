package builder

import "github.com/goliatone/go-formbuilder/pkg/form"

// History is the undo/redo state machine over full document snapshots.
// Present always mirrors the document shown in the builder; past and future
// hold complete copies, oldest first and most-recently-undone first. Memory
// cost is O(edits x document size), which is acceptable for a single editing
// session.
type History struct {
	past    []form.Form
	present form.Form
	future  []form.Form
}

// NewHistory starts a history at the given document with empty past and
// future.
func NewHistory(present form.Form) *History {
	return &History{present: present.Clone()}
}

// Commit records a new present. The prior present joins the past and any
// redo future is discarded: this is linear undo, not a branching tree.
func (h *History) Commit(doc form.Form) {
	h.past = append(h.past, h.present)
	h.present = doc.Clone()
	h.future = nil
}

// Undo steps back one snapshot. It reports false when there is nothing to
// undo.
func (h *History) Undo() (form.Form, bool) {
	if len(h.past) == 0 {
		return form.Form{}, false
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]form.Form{h.present}, h.future...)
	h.present = previous
	return previous.Clone(), true
}

// Redo steps forward one snapshot. It reports false when there is nothing to
// redo.
func (h *History) Redo() (form.Form, bool) {
	if len(h.future) == 0 {
		return form.Form{}, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return next.Clone(), true
}

// Reset replaces the whole history with a single present. Loading, resetting,
// duplicating, and instantiating a template are context switches, not
// undoable edits.
func (h *History) Reset(doc form.Form) {
	h.past = nil
	h.future = nil
	h.present = doc.Clone()
}

// Present returns a copy of the current snapshot.
func (h *History) Present() form.Form {
	return h.present.Clone()
}

// CanUndo reports whether any past snapshot exists.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether any undone snapshot can be reapplied.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}
