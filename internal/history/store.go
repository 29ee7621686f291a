// Package history keeps the bounded, most-recent-first log of completed
// translations.
//
// The log is persisted as a single JSON array under one storage key, capped at
// MaxEntries. Entries are immutable once appended; they only ever leave the
// log through tail eviction or a full clear. Storage failures degrade
// gracefully: a corrupt blob reads as an empty log and a failed write is
// logged without blocking the caller, so a transient quota or disk issue never
// breaks the user-visible workflow.
package history

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/erfanbaree-007/easyRx/internal/logger"
	"github.com/erfanbaree-007/easyRx/internal/storage"
	"github.com/erfanbaree-007/easyRx/pkg/models"
)

const (
	// MaxEntries is the maximum number of retained history entries.
	MaxEntries = 20

	storageKey = "history"
)

// Entry is one persisted record of a completed translation. JSON field names
// match the original persisted format.
type Entry struct {
	models.TranslationResult

	// ID uniquely identifies the entry. Assigned from the creation time;
	// appends are serialized, so nanosecond resolution is collision-free.
	ID string `json:"id"`

	// Timestamp is the creation time in milliseconds since the epoch.
	Timestamp int64 `json:"timestamp"`

	// TargetLanguage is the display name of the requested target language.
	TargetLanguage string `json:"targetLanguage"`
}

// Log is the ordered sequence of entries, newest first.
type Log []Entry

// Store persists the history log in a key-value storage backend.
type Store struct {
	kv  storage.Store
	log zerolog.Logger
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a history store on top of kv.
func NewStore(kv storage.Store) *Store {
	return &Store{
		kv:  kv,
		log: logger.WithComponent("history"),
		now: time.Now,
	}
}

// Load reads the persisted log. A missing or corrupt blob yields an empty log
// rather than an error; corruption is only logged.
func (s *Store) Load() Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append records a completed translation: it builds a fresh entry, prepends it
// to the loaded log, evicts the oldest entries beyond MaxEntries and persists.
// The updated in-memory log is returned even when persisting fails.
func (s *Store) Append(result models.TranslationResult, targetLanguage string) Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := Entry{
		TranslationResult: result,
		ID:                strconv.FormatInt(now.UnixNano(), 10),
		Timestamp:         now.UnixMilli(),
		TargetLanguage:    targetLanguage,
	}

	updated := append(Log{entry}, s.load()...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	if err := s.persist(updated); err != nil {
		// Degraded but not fatal: the caller still gets the updated log and
		// the next successful append re-persists everything retained.
		s.log.Error().Err(err).Msg("failed to persist history")
	}

	return updated
}

// Clear removes all persisted entries. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(storageKey); err != nil {
		s.log.Error().Err(err).Msg("failed to clear history")
		return err
	}
	return nil
}

// Find returns the entry with the given id.
func (s *Store) Find(id string) (Entry, bool) {
	for _, e := range s.Load() {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) load() Log {
	data, ok, err := s.kv.Get(storageKey)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read history")
		return Log{}
	}
	if !ok {
		return Log{}
	}

	var entries Log
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Error().Err(err).Msg("stored history is corrupt, starting empty")
		return Log{}
	}
	return entries
}

func (s *Store) persist(entries Log) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.kv.Put(storageKey, data)
}

// FormatTime renders an entry timestamp for display.
func FormatTime(timestampMillis int64) string {
	return time.UnixMilli(timestampMillis).Format("Jan 2, 15:04")
}
