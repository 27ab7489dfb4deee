package store

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// UpdateResult reports the raw outcome of a single-document write,
// mirroring the matched/modified counts document stores expose.
type UpdateResult struct {
	Matched  int `json:"matchedCount"`
	Modified int `json:"modifiedCount"`
}

// Entity provides generic CRUD operations for any domain type stored as a
// JSON document under a key prefix.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a secondary index on an entity. Indexes are non-unique:
// index keys embed the document ID, so many documents may share a value.
type Index[T any] struct {
	name   string
	keyGen func(*T) []string
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:   s,
		prefix:  prefix,
		indexes: make([]Index[T], 0),
	}
}

// WithIndex adds a secondary index to the entity.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:   name,
		keyGen: keyGen,
	})
	return e
}

// docKey builds the primary key for a document ID.
func (e *Entity[T]) docKey(id string) []byte {
	return []byte(e.prefix + id)
}

// indexKey builds a non-unique index key: prefix + idx:<name>:<value>:<id>.
func (e *Entity[T]) indexKey(name, value, id string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value + ":" + id)
}

// indexScanPrefix builds the scan prefix for all documents sharing an index value.
func (e *Entity[T]) indexScanPrefix(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value + ":")
}

// writeIndexKeys writes all index entries for a document inside txn.
func (e *Entity[T]) writeIndexKeys(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, value := range idx.keyGen(entity) {
			if err := txn.Set(e.indexKey(idx.name, value, id), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

// deleteIndexKeys removes all index entries for a document inside txn.
func (e *Entity[T]) deleteIndexKeys(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, value := range idx.keyGen(entity) {
			if err := txn.Delete(e.indexKey(idx.name, value, id)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}

// Create creates a new document with the given ID.
// Returns ErrAlreadyExists if a document with this ID already exists.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(e.docKey(id))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := txn.Set(e.docKey(id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexKeys(txn, id, entity)
	})
}

// Get retrieves a document by ID.
// Returns ErrNotFound if the document does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.docKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entity); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

// Update replaces an existing document and refreshes its index entries.
// Returns ErrNotFound if the document does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var oldEntity T
		item, err := txn.Get(e.docKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get existing key: %w", err)
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &oldEntity)
		})
		if err != nil {
			return fmt.Errorf("failed to unmarshal old entity: %w", err)
		}

		if err := e.deleteIndexKeys(txn, id, &oldEntity); err != nil {
			return err
		}

		if err := txn.Set(e.docKey(id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexKeys(txn, id, entity)
	})
}

// Patch performs a partial field merge: only the supplied top-level fields
// change, everything else in the stored document is preserved. The "_id"
// field is immutable and silently ignored. Returns ErrNotFound if the
// document does not exist; Modified is 0 when the merge changed nothing.
func (e *Entity[T]) Patch(ctx context.Context, id string, fields map[string]any) (UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return UpdateResult{}, err
	}

	var result UpdateResult
	err := e.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(e.docKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get existing key: %w", err)
		}

		var oldData []byte
		err = item.Value(func(val []byte) error {
			oldData = append(oldData, val...)
			return nil
		})
		if err != nil {
			return err
		}

		doc := make(map[string]any)
		if err := json.Unmarshal(oldData, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}

		for k, v := range fields {
			if k == "_id" {
				continue
			}
			doc[k] = v
		}

		newData, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal merged document: %w", err)
		}

		result.Matched = 1
		if bytes.Equal(oldData, newData) {
			return nil
		}
		result.Modified = 1

		// Round-trip through T so index keys reflect the merged document.
		var oldEntity, newEntity T
		if err := json.Unmarshal(oldData, &oldEntity); err != nil {
			return fmt.Errorf("failed to unmarshal old entity: %w", err)
		}
		if err := json.Unmarshal(newData, &newEntity); err != nil {
			return ErrInvalidArgument.WithMessage("patch produced an invalid document").WithCause(err)
		}

		if err := e.deleteIndexKeys(txn, id, &oldEntity); err != nil {
			return err
		}

		if err := txn.Set(e.docKey(id), newData); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexKeys(txn, id, &newEntity)
	})
	if err != nil {
		return UpdateResult{}, err
	}

	return result, nil
}

// Delete removes a document by ID and returns how many documents were
// removed (0 or 1). The operation is idempotent: deleting a missing ID is
// not an error, it reports a zero count.
func (e *Entity[T]) Delete(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	deleted := 0
	err := e.store.db.Update(func(txn *badger.Txn) error {
		var entity T
		item, err := txn.Get(e.docKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
		if err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		if err := e.deleteIndexKeys(txn, id, &entity); err != nil {
			return err
		}

		if err := txn.Delete(e.docKey(id)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}

		deleted = 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// List returns an iterator over all documents in stable key order.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		_ = e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				if e.isIndexKey(it.Item().Key()) {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
	}
}

// ListByIndex returns all documents whose index value matches exactly.
// The result preserves index key order (stable across calls).
func (e *Entity[T]) ListByIndex(ctx context.Context, name, value string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	err := e.store.db.View(func(txn *badger.Txn) error {
		prefix := e.indexScanPrefix(name, value)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]T, 0, len(ids))
	for _, id := range ids {
		entity, err := e.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue // Index entry raced a delete; skip.
			}
			return nil, err
		}
		results = append(results, *entity)
	}

	return results, nil
}

// Page returns one page of documents plus the pagination envelope.
// Counting and window collection happen in a single pass so totals and
// items come from the same snapshot.
func (e *Entity[T]) Page(ctx context.Context, params PageParams) (*PagedResult[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.Normalize()
	offset := params.Offset()

	result := &PagedResult[T]{
		Items:       make([]T, 0, params.Limit),
		CurrentPage: params.Page,
	}

	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(e.prefix)
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		seen := 0
		for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if e.isIndexKey(it.Item().Key()) {
				continue
			}

			if seen >= offset && len(result.Items) < params.Limit {
				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					return err
				}
				result.Items = append(result.Items, entity)
			}
			seen++
		}

		result.TotalItems = seen
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TotalPages = totalPages(result.TotalItems, params.Limit)
	return result, nil
}

// Count returns the number of documents in the collection.
func (e *Entity[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(e.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
			if !e.isIndexKey(it.Item().Key()) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// isIndexKey reports whether a raw key belongs to a secondary index.
func (e *Entity[T]) isIndexKey(key []byte) bool {
	k := string(key)
	if len(k) <= len(e.prefix) {
		return false
	}
	return strings.HasPrefix(k[len(e.prefix):], "idx:")
}
