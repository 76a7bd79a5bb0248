package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// Backend is the storage engine collections are opened on: a MongoDB database
// or a process-local memory store.
type Backend struct {
	db *mongo.Database

	mu     sync.Mutex
	tables map[string]*memTable
}

// NewMongoBackend opens collections on db.
func NewMongoBackend(db *mongo.Database) *Backend {
	return &Backend{db: db}
}

// NewMemoryBackend keeps every collection in process memory.
func NewMemoryBackend() *Backend {
	return &Backend{tables: map[string]*memTable{}}
}

// Kind reports "mongodb" or "memory".
func (b *Backend) Kind() string {
	if b.db != nil {
		return "mongodb"
	}
	return "memory"
}

// Name returns the database name, or "memory".
func (b *Backend) Name() string {
	if b.db != nil {
		return b.db.Name()
	}
	return "memory"
}

// Ping checks connectivity to the underlying database.
func (b *Backend) Ping(ctx context.Context) error {
	if b.db == nil {
		return nil
	}
	return b.db.Client().Ping(ctx, nil)
}

func (b *Backend) table(name string) *memTable {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tables[name]
	if !ok {
		t = newMemTable()
		b.tables[name] = t
	}
	return t
}

// For opens the named collection of T on b.
func For[T any](b *Backend, name string) Collection[T] {
	if b.db != nil {
		return &mongoCollection[T]{col: b.db.Collection(name)}
	}
	return &memoryCollection[T]{t: b.table(name)}
}
