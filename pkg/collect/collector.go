// Package collect appends submitted responses to the persistence gateway.
// Submission runs the shared evaluator first: a response only exists if every
// step of the form accepted the values.
package collect

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// ValidationError carries the per-field error messages that blocked a
// submission. Field ids map to the first failing rule's message.
type ValidationError struct {
	Fields map[string]string
}

// Error lists the failing field ids in stable order.
func (e *ValidationError) Error() string {
	ids := make([]string, 0, len(e.Fields))
	for id := range e.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("collect: validation failed for fields [%s]", strings.Join(ids, ", "))
}

// Collector appends response records for a form. A single collector instance
// serializes its appends, so concurrent submissions are ordered and never
// lost.
type Collector struct {
	store storage.Store

	mu   sync.Mutex
	last int64
}

// New wraps a storage gateway.
func New(store storage.Store) *Collector {
	return &Collector{store: store}
}

// Submit validates the values against every step of the form and, on
// success, appends an immutable response record. Validation failure returns
// a *ValidationError and writes nothing.
func (c *Collector) Submit(ctx context.Context, doc form.Form, values map[string]any) (form.Response, error) {
	if errs := validation.EvaluateForm(doc, values); len(errs) > 0 {
		return form.Response{}, &ValidationError{Fields: errs}
	}
	return c.Add(ctx, doc.ID, values)
}

// Add appends a response without validating, mirroring direct collection
// surfaces that validate upstream. The record gets a fresh id and a
// submission timestamp that never decreases across a collector's lifetime.
func (c *Collector) Add(ctx context.Context, formID string, data map[string]any) (form.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := form.Now()
	if now < c.last {
		now = c.last
	}
	c.last = now

	response := form.Response{
		ID:          form.NewID(),
		FormID:      formID,
		Data:        data,
		SubmittedAt: now,
	}
	if err := c.store.AppendResponse(ctx, response.Clone()); err != nil {
		return form.Response{}, fmt.Errorf("collect: append response: %w", err)
	}
	return response, nil
}

// Responses returns the submissions for a form in append order.
func (c *Collector) Responses(ctx context.Context, formID string) ([]form.Response, error) {
	responses, err := c.store.Responses(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("collect: load responses: %w", err)
	}
	return responses, nil
}
