package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("entity not found")

// ExpandSpec names a reference field to resolve into the document it
// points at, recursively. Path is the field holding the reference, From
// the collection it points into. Select optionally restricts the resolved
// document to the listed fields; the identifier and any nested expansion
// paths are always kept so ancestor identity checks keep working.
type ExpandSpec struct {
	Path   string
	From   string
	Select []string
	Expand []ExpandSpec
}

// EntityStore is the read capability the catalog core consumes: fetch one
// entity by equality filters with optional reference expansion, or fetch
// many with an optional sort. Implementations own timeout and retry
// policy; callers treat any failure as an absence.
type EntityStore interface {
	FindOne(ctx context.Context, collection string, filter bson.M, out interface{}, expand ...ExpandSpec) error
	FindMany(ctx context.Context, collection string, filter bson.M, sort bson.D, out interface{}) error
}
