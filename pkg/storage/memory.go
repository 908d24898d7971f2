package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Memory is an in-process Store for tests and ephemeral sessions. All
// documents are deep-copied on the way in and out so callers can never alias
// stored state.
type Memory struct {
	mu        sync.RWMutex
	closed    bool
	forms     map[string]form.Form
	templates map[string]form.Form
	responses map[string][]form.Response
	session   *form.Form
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		forms:     make(map[string]form.Form),
		templates: make(map[string]form.Form),
		responses: make(map[string][]form.Response),
	}
}

// SaveForm upserts the form by id.
func (m *Memory) SaveForm(ctx context.Context, doc form.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.forms[doc.ID] = doc.Clone()
	return nil
}

// LoadForm fetches a form by id.
func (m *Memory) LoadForm(ctx context.Context, id string) (form.Form, error) {
	if err := ctx.Err(); err != nil {
		return form.Form{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return form.Form{}, ErrClosed
	}
	doc, ok := m.forms[id]
	if !ok {
		return form.Form{}, ErrNotFound
	}
	return doc.Clone(), nil
}

// ListForms returns every stored form ordered by creation time.
func (m *Memory) ListForms(ctx context.Context) ([]form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return sortedForms(m.forms), nil
}

// DeleteForm removes a form by id. Deleting an absent id reports ErrNotFound.
func (m *Memory) DeleteForm(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, ok := m.forms[id]; !ok {
		return ErrNotFound
	}
	delete(m.forms, id)
	return nil
}

// SaveTemplate upserts a template by id.
func (m *Memory) SaveTemplate(ctx context.Context, doc form.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.templates[doc.ID] = doc.Clone()
	return nil
}

// ListTemplates returns every stored template ordered by creation time.
func (m *Memory) ListTemplates(ctx context.Context) ([]form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return sortedForms(m.templates), nil
}

// AppendResponse appends a response under its form id. Appends are never
// reordered or dropped.
func (m *Memory) AppendResponse(ctx context.Context, response form.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.responses[response.FormID] = append(m.responses[response.FormID], response.Clone())
	return nil
}

// Responses returns the responses for a form in submission order. An unknown
// form id yields an empty slice, not an error: a form with no responses and
// an unsaved form look the same to the dashboard.
func (m *Memory) Responses(ctx context.Context, formID string) ([]form.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	stored := m.responses[formID]
	out := make([]form.Response, len(stored))
	for i, response := range stored {
		out[i] = response.Clone()
	}
	return out, nil
}

// SaveSession stores the builder's last-active form.
func (m *Memory) SaveSession(ctx context.Context, doc form.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	clone := doc.Clone()
	m.session = &clone
	return nil
}

// LoadSession fetches the builder's last-active form.
func (m *Memory) LoadSession(ctx context.Context) (form.Form, error) {
	if err := ctx.Err(); err != nil {
		return form.Form{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return form.Form{}, ErrClosed
	}
	if m.session == nil {
		return form.Form{}, ErrNotFound
	}
	return m.session.Clone(), nil
}

// Close marks the store closed. Further calls report ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func sortedForms(docs map[string]form.Form) []form.Form {
	out := make([]form.Form, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
