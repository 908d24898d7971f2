// Package storage defines the persistence gateway for forms, templates,
// responses, and the builder's session document. Implementations are small
// key-value stores; every operation is fallible I/O and a failed write must
// leave the previously persisted record untouched.
package storage

import (
	"context"
	"errors"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

var (
	// ErrNotFound reports that no record exists under the requested id. It is
	// distinct from ErrCorruptRecord: absence is an ordinary outcome,
	// corruption is not.
	ErrNotFound = errors.New("storage: record not found")

	// ErrCorruptRecord reports that a record exists but could not be decoded.
	// Implementations must never mask corruption as absence.
	ErrCorruptRecord = errors.New("storage: corrupt record")

	// ErrClosed reports use of a store after Close.
	ErrClosed = errors.New("storage: store is closed")
)

// Store is the durable gateway behind the builder. Forms and templates are
// upserted by id; responses are append-only per form id and returned in
// submission order. The session slot holds the builder's last-active form
// for session continuity.
type Store interface {
	SaveForm(ctx context.Context, doc form.Form) error
	LoadForm(ctx context.Context, id string) (form.Form, error)
	ListForms(ctx context.Context) ([]form.Form, error)
	DeleteForm(ctx context.Context, id string) error

	SaveTemplate(ctx context.Context, doc form.Form) error
	ListTemplates(ctx context.Context) ([]form.Form, error)

	AppendResponse(ctx context.Context, response form.Response) error
	Responses(ctx context.Context, formID string) ([]form.Response, error)

	SaveSession(ctx context.Context, doc form.Form) error
	LoadSession(ctx context.Context) (form.Form, error)

	Close() error
}
