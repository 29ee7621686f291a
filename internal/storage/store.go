// Package storage provides the local key-value persistence layer used for
// history and subscription state.
//
// Values are opaque JSON blobs addressed by a short string key. The file-backed
// implementation keeps one file per key under a per-user data directory.
// Writes are serialized within the process; concurrent writers from other
// processes are tolerated with last-write-wins semantics, no cross-process
// locking is attempted.
package storage

// Store is a string-keyed blob store.
type Store interface {
	// Get returns the stored value for key. The boolean reports whether the
	// key exists; a missing key is not an error.
	Get(key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string) error
}
