package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/erfanbaree-007/easyRx/internal/storage"
	"github.com/erfanbaree-007/easyRx/pkg/models"
)

func sampleResult(i int) models.TranslationResult {
	return models.TranslationResult{
		OriginalText:     fmt.Sprintf("Hola %d", i),
		TranslatedText:   fmt.Sprintf("Hello %d", i),
		DetectedLanguage: "Spanish",
		ImageDescription: "a sign",
	}
}

func TestAppend_RoundTrip(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	result := sampleResult(1)
	entries := store.Append(result, "English")

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	loaded := store.Load()
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 persisted entry, got %d", len(loaded))
	}

	got := loaded[0]
	if got.OriginalText != result.OriginalText ||
		got.TranslatedText != result.TranslatedText ||
		got.DetectedLanguage != result.DetectedLanguage ||
		got.ImageDescription != result.ImageDescription {
		t.Errorf("Loaded entry does not match appended result: %+v", got)
	}
	if got.TargetLanguage != "English" {
		t.Errorf("Expected target language English, got %s", got.TargetLanguage)
	}
	if got.ID == "" || got.Timestamp == 0 {
		t.Errorf("Expected id and timestamp to be assigned, got %+v", got)
	}
}

func TestAppend_NewestFirst(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	// Deterministic, strictly increasing clock.
	base := time.Now()
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	store.Append(sampleResult(1), "English")
	entries := store.Append(sampleResult(2), "German")

	if entries[0].OriginalText != "Hola 2" {
		t.Errorf("Expected newest entry at index 0, got %s", entries[0].OriginalText)
	}
	if entries[1].OriginalText != "Hola 1" {
		t.Errorf("Expected older entry at index 1, got %s", entries[1].OriginalText)
	}
}

func TestAppend_NeverExceedsCap(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	var entries Log
	for i := 0; i < MaxEntries+5; i++ {
		entries = store.Append(sampleResult(i), "English")
		if len(entries) > MaxEntries {
			t.Fatalf("Log exceeded cap after append %d: %d entries", i, len(entries))
		}
	}

	if len(entries) != MaxEntries {
		t.Errorf("Expected exactly %d entries, got %d", MaxEntries, len(entries))
	}

	// The oldest appends were evicted from the tail.
	if entries[0].OriginalText != fmt.Sprintf("Hola %d", MaxEntries+4) {
		t.Errorf("Expected newest append at index 0, got %s", entries[0].OriginalText)
	}
	if entries[MaxEntries-1].OriginalText != "Hola 5" {
		t.Errorf("Expected oldest surviving entry at tail, got %s", entries[MaxEntries-1].OriginalText)
	}
}

func TestClear(t *testing.T) {
	store := NewStore(storage.NewMemStore())
	store.Append(sampleResult(1), "English")

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := store.Load(); len(got) != 0 {
		t.Errorf("Expected empty log after clear, got %d entries", len(got))
	}

	// Idempotent.
	if err := store.Clear(); err != nil {
		t.Errorf("Second Clear failed: %v", err)
	}
}

func TestLoad_CorruptStorage(t *testing.T) {
	kv := storage.NewMemStore()
	if err := kv.Put("history", []byte("{not json")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store := NewStore(kv)
	if got := store.Load(); len(got) != 0 {
		t.Errorf("Expected empty log for corrupt storage, got %d entries", len(got))
	}
}

func TestFind(t *testing.T) {
	store := NewStore(storage.NewMemStore())
	entries := store.Append(sampleResult(1), "English")

	got, ok := store.Find(entries[0].ID)
	if !ok {
		t.Fatal("Expected to find the appended entry")
	}
	if got.OriginalText != "Hola 1" {
		t.Errorf("Found wrong entry: %+v", got)
	}

	if _, ok := store.Find("nope"); ok {
		t.Error("Expected lookup of unknown id to fail")
	}
}

// failingStore rejects all writes.
type failingStore struct {
	storage.Store
}

func (f *failingStore) Put(key string, value []byte) error {
	return errors.New("quota exceeded")
}

func TestAppend_PersistFailureStillReturnsLog(t *testing.T) {
	store := NewStore(&failingStore{Store: storage.NewMemStore()})

	entries := store.Append(sampleResult(1), "English")
	if len(entries) != 1 {
		t.Errorf("Expected in-memory log despite persist failure, got %d entries", len(entries))
	}
}
