package repository

import (
	"time"

	"github.com/jinzhu/inflection"
)

// Model carries the identifier and timestamp shape every entity shares.
// Embed it in entity structs. The identifier is immutable once assigned and
// both timestamps are set by the repository layer, never by the caller.
type Model struct {
	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	CreatedAt time.Time `bun:"created_at,nullzero" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// ModelHandlers supplies the per-entity pieces the generic repository needs:
// the table name, the primary-key column, a record constructor, accessors for
// the identifier and timestamps, the set of filterable columns, and a patch
// mapper for partial updates. Entity repositories provide one of these
// instead of re-implementing query construction.
type ModelHandlers[T any] struct {
	// Table is the storage location. Defaults to the pluralized snake_case
	// entity type name and must match the struct's bun table tag.
	Table string

	// PK is the primary-key column. Defaults to "id".
	PK string

	// NewRecord constructs an empty record for row scanning.
	// Defaults to new(T).
	NewRecord func() *T

	// GetID reads the assigned identifier. Required when the repository must
	// enforce that callers never supply one on create.
	GetID func(*T) int64

	// SetCreatedAt / SetUpdatedAt let the repository stamp timestamps.
	// Leave nil for entities without timestamp columns.
	SetCreatedAt func(*T, time.Time)
	SetUpdatedAt func(*T, time.Time)

	// Filterable maps exposed filter field names to column names. Filters on
	// any other field are rejected.
	Filterable map[string]string

	// Patch maps a partial entity to the columns that are actually set,
	// so absent fields stay untouched on update.
	Patch func(*T) map[string]any
}

func (h ModelHandlers[T]) withDefaults() ModelHandlers[T] {
	if h.Table == "" {
		h.Table = inflection.Plural(EntityName[T]())
	}
	if h.PK == "" {
		h.PK = "id"
	}
	if h.NewRecord == nil {
		h.NewRecord = func() *T { return new(T) }
	}
	return h
}
