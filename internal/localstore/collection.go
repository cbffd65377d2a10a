// Package localstore implements owner-scoped record collections on top of
// the kv.Store capability: cash expenses and saving goals.
//
// Storage is whole-collection overwrite, not per-record: every mutation
// reads the entire collection, modifies it in memory and writes it back.
// That is O(n) per mutation and deliberate — collections hold hundreds of
// records for a single user. Two concurrent writers on the same owner's
// collection race read-modify-write cycles and the last write wins; the
// design accepts that instead of coordinating.
package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"pext/internal/kv"
)

// collection is generic CRUD over one named collection of records, keyed by
// owner id through kv.Key.
type collection[T any] struct {
	store     kv.Store
	namespace string
}

// load returns the owner's records. Absence and corrupt stored JSON both
// yield an empty slice; only an unavailable store surfaces as an error.
func (c collection[T]) load(ownerID int64) ([]T, error) {
	key := kv.Key(c.namespace, ownerID)
	raw, ok, err := c.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("Discarding unreadable collection",
			"key", key,
			"error", err)
		return nil, nil
	}
	return items, nil
}

// replace serializes items and overwrites the owner's stored collection.
func (c collection[T]) replace(ownerID int64, items []T) error {
	key := kv.Key(c.namespace, ownerID)
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	if err := c.store.Set(key, string(raw)); err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}

// append loads, appends and writes back the full collection.
func (c collection[T]) append(ownerID int64, item T) error {
	items, err := c.load(ownerID)
	if err != nil {
		return err
	}
	return c.replace(ownerID, append(items, item))
}

// remove drops every record matching the predicate and writes back only
// when something was actually removed. Removing nothing is a no-op, not an
// error.
func (c collection[T]) remove(ownerID int64, match func(T) bool) (bool, error) {
	items, err := c.load(ownerID)
	if err != nil {
		return false, err
	}

	kept := items[:0:0]
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := c.replace(ownerID, kept); err != nil {
		return false, err
	}
	return true, nil
}
