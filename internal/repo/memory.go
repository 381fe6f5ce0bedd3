package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ecommerce-services/internal/domain"
)

// memTable 进程内的文档集合：按插入顺序保存，外加一个唯一键索引。
// 所有读写都在锁内完成拷贝，调用方拿到的永远是独立快照。
type memTable[T any] struct {
	mu     sync.RWMutex
	order  []string
	docs   map[string]T
	unique map[string]string // unique key -> id

	idOf  func(*T) *string
	keyOf func(*T) string
}

func newMemTable[T any](idOf func(*T) *string, keyOf func(*T) string) *memTable[T] {
	return &memTable[T]{
		docs:   make(map[string]T),
		unique: make(map[string]string),
		idOf:   idOf,
		keyOf:  keyOf,
	}
}

func (t *memTable[T]) save(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(doc)
	key := t.keyOf(doc)
	if owner, ok := t.unique[key]; ok && owner != *id {
		return domain.ErrDuplicateKey
	}
	if *id == "" {
		*id = uuid.NewString()
	}
	if prev, ok := t.docs[*id]; ok {
		delete(t.unique, t.keyOf(&prev))
	} else {
		t.order = append(t.order, *id)
	}
	t.docs[*id] = *doc
	t.unique[key] = *id
	return nil
}

func (t *memTable[T]) get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	doc, ok := t.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (t *memTable[T]) getByKey(ctx context.Context, key string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.unique[key]
	if !ok {
		return nil, nil
	}
	doc := t.docs[id]
	return &doc, nil
}

func (t *memTable[T]) remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	doc, ok := t.docs[id]
	if !ok {
		return nil
	}
	delete(t.unique, t.keyOf(&doc))
	delete(t.docs, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *memTable[T]) filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		doc := t.docs[id]
		if keep == nil || keep(&doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}
