// Package kv defines the durable key-value capability the local record
// stores are built on. Values are whole JSON-encoded collections; every
// mutation overwrites the full value for its key. The interface exists so
// tests can inject an in-memory fake instead of a real database.
package kv

import "strconv"

// Store is a string-keyed, string-valued durable store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value for key.
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Key builds the collection key for a namespace and owner id. The layout
// ("<namespace>_<ownerID>") matches the original client's local storage
// keys, so existing data stays readable.
func Key(namespace string, ownerID int64) string {
	return namespace + "_" + strconv.FormatInt(ownerID, 10)
}
