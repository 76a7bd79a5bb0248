package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// memTable holds one collection as BSON documents in insertion order, so the
// in-memory backend sees exactly the field names and types MongoDB would.
type memTable struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]bson.M
}

func newMemTable() *memTable {
	return &memTable{docs: map[string]bson.M{}}
}

// memoryCollection implements Collection on a memTable. Used by tests and
// when no MongoDB URI is configured.
type memoryCollection[T any] struct {
	t *memTable
}

func (m *memoryCollection[T]) Insert(ctx context.Context, doc *T) error {
	ensureID(doc)
	d, err := toDoc(doc)
	if err != nil {
		return err
	}
	id, _ := d["_id"].(string)
	if id == "" {
		return ErrNoID
	}
	m.t.mu.Lock()
	defer m.t.mu.Unlock()
	if _, exists := m.t.docs[id]; exists {
		return fmt.Errorf("duplicate _id %q", id)
	}
	m.t.docs[id] = d
	m.t.order = append(m.t.order, id)
	return nil
}

func (m *memoryCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	m.t.mu.RLock()
	d, ok := m.t.docs[id]
	m.t.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return fromDoc[T](d)
}

func (m *memoryCollection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	matched, err := m.match(q)
	if err != nil {
		return nil, err
	}
	if q.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compareValues(lookup(matched[i], q.SortBy), lookup(matched[j], q.SortBy))
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Skip > 0 {
		if q.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]T, 0, len(matched))
	for _, d := range matched {
		v, err := fromDoc[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (m *memoryCollection[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1
	list, err := m.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

func (m *memoryCollection[T]) Count(ctx context.Context, q Query) (int64, error) {
	matched, err := m.match(q)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (m *memoryCollection[T]) Update(ctx context.Context, id string, set map[string]interface{}) error {
	patch, err := toDoc(set)
	if err != nil {
		return err
	}
	m.t.mu.Lock()
	defer m.t.mu.Unlock()
	d, ok := m.t.docs[id]
	if !ok {
		return ErrNotFound
	}
	// stored documents are never mutated once readers may hold them
	next := make(bson.M, len(d)+len(patch))
	for k, v := range d {
		next[k] = v
	}
	for k, v := range patch {
		next[k] = v
	}
	m.t.docs[id] = next
	return nil
}

func (m *memoryCollection[T]) Delete(ctx context.Context, id string) error {
	m.t.mu.Lock()
	defer m.t.mu.Unlock()
	if _, ok := m.t.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.t.docs, id)
	for i, oid := range m.t.order {
		if oid == id {
			m.t.order = append(m.t.order[:i], m.t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryCollection[T]) match(q Query) ([]bson.M, error) {
	m.t.mu.RLock()
	defer m.t.mu.RUnlock()
	out := []bson.M{}
	for _, id := range m.t.order {
		d := m.t.docs[id]
		ok, err := matches(d, q)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var d bson.M
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return d, nil
}

func fromDoc[T any](d bson.M) (*T, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &v, nil
}
