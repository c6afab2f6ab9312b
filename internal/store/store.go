package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/liamoiknine/wolram/internal/models"
)

// ErrNotFound is returned when a record does not exist in the store.
var ErrNotFound = errors.New("store: not found")

// Entry is a raw key-value pair as held by a Backend.
type Entry struct {
	Key   string
	Value []byte
}

// Backend is the raw byte-level engine beneath the typed collections.
// Keys are hierarchical strings such as "response/<id>".
type Backend interface {
	// Get retrieves the value for a key. Returns ErrNotFound if not present.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a key-value pair, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. No error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// List returns all entries whose key starts with prefix, in
	// lexicographic key order.
	List(ctx context.Context, prefix string) ([]Entry, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Store groups the typed record collections over one backend.
type Store struct {
	backend   Backend
	patients  *Collection[models.Patient]
	sessions  *Collection[models.Session]
	responses *Collection[models.ItemResponse]
	clips     *Collection[models.AudioClip]
}

// New builds a Store on top of a backend.
func New(b Backend) *Store {
	return &Store{
		backend: b,
		patients: newCollection(b, "patient",
			func(p *models.Patient) *string { return &p.ID },
			func(p *models.Patient) *time.Time { return &p.CreatedAt },
			nil),
		sessions: newCollection(b, "session",
			func(s *models.Session) *string { return &s.ID },
			func(s *models.Session) *time.Time { return &s.CreatedAt },
			func(s *models.Session) *time.Time { return &s.UpdatedAt }),
		responses: newCollection(b, "response",
			func(r *models.ItemResponse) *string { return &r.ID },
			func(r *models.ItemResponse) *time.Time { return &r.CreatedAt },
			func(r *models.ItemResponse) *time.Time { return &r.UpdatedAt }),
		clips: newCollection(b, "clip",
			func(c *models.AudioClip) *string { return &c.ID },
			func(c *models.AudioClip) *time.Time { return &c.CreatedAt },
			func(c *models.AudioClip) *time.Time { return &c.UpdatedAt }),
	}
}

func (s *Store) Patients() *Collection[models.Patient]       { return s.patients }
func (s *Store) Sessions() *Collection[models.Session]       { return s.sessions }
func (s *Store) Responses() *Collection[models.ItemResponse] { return s.responses }
func (s *Store) Clips() *Collection[models.AudioClip]        { return s.clips }

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Collection provides CRUD over one record type, serialized as JSON.
// Create assigns a UUID when the ID is blank and stamps CreatedAt (when
// zero) and UpdatedAt; Update requires an existing record and bumps
// UpdatedAt.
type Collection[T any] struct {
	backend Backend
	prefix  string
	id      func(*T) *string
	created func(*T) *time.Time
	updated func(*T) *time.Time
	now     func() time.Time
}

func newCollection[T any](
	b Backend,
	prefix string,
	id func(*T) *string,
	created func(*T) *time.Time,
	updated func(*T) *time.Time,
) *Collection[T] {
	return &Collection[T]{
		backend: b,
		prefix:  prefix,
		id:      id,
		created: created,
		updated: updated,
		now:     time.Now,
	}
}

func (c *Collection[T]) key(id string) string {
	return c.prefix + "/" + id
}

// Create persists a new record, assigning ID and timestamps as needed.
func (c *Collection[T]) Create(ctx context.Context, v *T) error {
	id := c.id(v)
	if *id == "" {
		*id = uuid.NewString()
	}
	now := c.now().UTC()
	if created := c.created(v); created.IsZero() {
		*created = now
	}
	if c.updated != nil {
		*c.updated(v) = now
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.prefix, err)
	}
	return c.backend.Set(ctx, c.key(*id), data)
}

// Get retrieves a record by ID.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.backend.Get(ctx, c.key(id))
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("unmarshal %s %s: %w", c.prefix, id, err)
	}
	return v, nil
}

// Update rewrites an existing record and bumps its update timestamp.
func (c *Collection[T]) Update(ctx context.Context, v *T) error {
	id := *c.id(v)
	if id == "" {
		return fmt.Errorf("update %s: missing id", c.prefix)
	}
	if _, err := c.backend.Get(ctx, c.key(id)); err != nil {
		return err
	}
	if c.updated != nil {
		*c.updated(v) = c.now().UTC()
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.prefix, err)
	}
	return c.backend.Set(ctx, c.key(id), data)
}

// Delete removes a record. Deleting a missing record is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.backend.Delete(ctx, c.key(id))
}

// List returns every record in the collection ordered by creation time
// (ties broken by ID so the order is stable).
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	entries, err := c.backend.List(ctx, c.prefix+"/")
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		var v T
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", e.Key, err)
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := *c.created(&out[i]), *c.created(&out[j])
		if ci.Equal(cj) {
			return *c.id(&out[i]) < *c.id(&out[j])
		}
		return ci.Before(cj)
	})
	return out, nil
}
