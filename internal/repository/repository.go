package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrNoID     = errors.New("record has no _id")
)

// Op is a filter comparison operator.
type Op int

const (
	Eq Op = iota
	Ne
	Gt
	Gte
	Lt
	Lte
	// Regex matches case-insensitively against a string field.
	Regex
	// In matches when the field equals any element of a []interface{} value.
	In
)

// Filter restricts a query to records whose Field satisfies Op against Value.
// Field may be a dotted path into nested documents.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

func Where(field string, op Op, value interface{}) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Query selects records: all Filters must match and, when AnyOf is set, at
// least one of AnyOf must match.
type Query struct {
	Filters []Filter
	AnyOf   []Filter
	SortBy  string
	Desc    bool
	Skip    int64
	Limit   int64
}

// Collection is the persistence contract every entity store satisfies.
type Collection[T any] interface {
	Insert(ctx context.Context, doc *T) error
	Get(ctx context.Context, id string) (*T, error)
	Find(ctx context.Context, q Query) ([]T, error)
	FindOne(ctx context.Context, q Query) (*T, error)
	Count(ctx context.Context, q Query) (int64, error)
	Update(ctx context.Context, id string, set map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type identified interface {
	GetID() string
	SetID(string)
}

// ensureID assigns a fresh UUID to documents that expose an empty ID.
func ensureID(doc interface{}) {
	if e, ok := doc.(identified); ok && e.GetID() == "" {
		e.SetID(uuid.NewString())
	}
}
