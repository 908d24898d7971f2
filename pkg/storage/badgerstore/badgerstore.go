// Package badgerstore persists the builder's collections in an embedded
// BadgerDB key-value store. Records are JSON documents keyed by collection
// prefix; response keys carry a per-form monotonic sequence so append order
// survives restarts.
package badgerstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

const (
	formPrefix     = "form:"
	templatePrefix = "template:"
	responsePrefix = "response:"
	responseSeqKey = "responseseq:"
	sessionKey     = "session"
)

// Config holds the options for opening a store.
type Config struct {
	// Path is the directory for the database files. Required unless InMemory
	// is set.
	Path string

	// InMemory disables disk persistence. Useful for tests.
	InMemory bool

	// SyncWrites forces fsync on every write. Enable for durable sessions.
	SyncWrites bool

	// Logger receives BadgerDB's internal log lines. Nil disables them.
	Logger *zap.Logger
}

// Store implements storage.Store on top of BadgerDB.
type Store struct {
	db *badger.DB

	// appendMu serializes response appends: the sequence read and the record
	// write must not interleave across submitters.
	appendMu sync.Mutex
}

var _ storage.Store = (*Store)(nil)

// Open creates the database directory if needed and opens the store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerstore: path is required")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("badgerstore: create directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveForm upserts the form by id. The write is transactional: a failure
// leaves any previously stored record untouched.
func (s *Store) SaveForm(ctx context.Context, doc form.Form) error {
	return s.putJSON(ctx, formPrefix+doc.ID, doc)
}

// LoadForm fetches a form by id.
func (s *Store) LoadForm(ctx context.Context, id string) (form.Form, error) {
	var doc form.Form
	if err := s.getJSON(ctx, formPrefix+id, &doc); err != nil {
		return form.Form{}, err
	}
	return doc, nil
}

// ListForms returns every stored form ordered by creation time.
func (s *Store) ListForms(ctx context.Context) ([]form.Form, error) {
	return s.listForms(ctx, formPrefix)
}

// DeleteForm removes a form by id.
func (s *Store) DeleteForm(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := []byte(formPrefix + id)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	return translateErr(err)
}

// SaveTemplate upserts a template by id.
func (s *Store) SaveTemplate(ctx context.Context, doc form.Form) error {
	return s.putJSON(ctx, templatePrefix+doc.ID, doc)
}

// ListTemplates returns every stored template ordered by creation time.
func (s *Store) ListTemplates(ctx context.Context) ([]form.Form, error) {
	return s.listForms(ctx, templatePrefix)
}

// AppendResponse appends a response under its form id. A single writer at a
// time allocates the next sequence number and writes the record in one
// transaction, so appends are never lost or reordered.
func (s *Store) AppendResponse(ctx context.Context, response form.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("badgerstore: encode response: %w", err)
	}

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	err = s.db.Update(func(txn *badger.Txn) error {
		seq, err := nextSequence(txn, responseSeqKey+response.FormID)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s%s:%012d", responsePrefix, response.FormID, seq)
		return txn.Set([]byte(key), payload)
	})
	return translateErr(err)
}

// Responses returns the responses for a form in append order. Sequence-keyed
// records iterate in submission order by construction.
func (s *Store) Responses(ctx context.Context, formID string) ([]form.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(responsePrefix + formID + ":")
	var out []form.Response
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var response form.Response
				if err := json.Unmarshal(val, &response); err != nil {
					return fmt.Errorf("%w: response %s: %v", storage.ErrCorruptRecord, it.Item().Key(), err)
				}
				out = append(out, response)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}
	if out == nil {
		out = []form.Response{}
	}
	return out, nil
}

// SaveSession stores the builder's last-active form.
func (s *Store) SaveSession(ctx context.Context, doc form.Form) error {
	return s.putJSON(ctx, sessionKey, doc)
}

// LoadSession fetches the builder's last-active form.
func (s *Store) LoadSession(ctx context.Context) (form.Form, error) {
	var doc form.Form
	if err := s.getJSON(ctx, sessionKey, &doc); err != nil {
		return form.Form{}, err
	}
	return doc, nil
}

// Close releases the database. Further calls report storage.ErrClosed.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) putJSON(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("badgerstore: encode %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
	return translateErr(err)
}

func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, out); err != nil {
				return fmt.Errorf("%w: %s: %v", storage.ErrCorruptRecord, key, err)
			}
			return nil
		})
	})
	return translateErr(err)
}

func (s *Store) listForms(ctx context.Context, prefix string) ([]form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keyPrefix := []byte(prefix)
	var out []form.Form
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var doc form.Form
				if err := json.Unmarshal(val, &doc); err != nil {
					return fmt.Errorf("%w: %s: %v", storage.ErrCorruptRecord, it.Item().Key(), err)
				}
				out = append(out, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func nextSequence(txn *badger.Txn, key string) (uint64, error) {
	var seq uint64
	item, err := txn.Get([]byte(key))
	switch {
	case err == nil:
		err = item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("%w: sequence %s", storage.ErrCorruptRecord, key)
			}
			seq = binary.BigEndian.Uint64(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
	case errors.Is(err, badger.ErrKeyNotFound):
		seq = 0
	default:
		return 0, err
	}

	seq++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	if err := txn.Set([]byte(key), buf); err != nil {
		return 0, err
	}
	return seq, nil
}

func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return storage.ErrNotFound
	case errors.Is(err, badger.ErrDBClosed):
		return storage.ErrClosed
	default:
		return err
	}
}

// badgerLogger adapts zap to BadgerDB's logger interface.
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}
