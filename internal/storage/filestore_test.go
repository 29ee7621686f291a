package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put("history", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, ok, err := store.Get("history")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected key to exist after Put")
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Expected stored value back, got %s", data)
	}
}

func TestFileStore_MissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	_, ok, err := store.Get("missing")
	if err != nil {
		t.Errorf("Expected no error for missing key, got %v", err)
	}
	if ok {
		t.Error("Expected missing key to report ok=false")
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put("subscription", []byte("old")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("subscription", []byte("new")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, _, _ := store.Get("subscription")
	if string(data) != "new" {
		t.Errorf("Expected overwritten value, got %s", data)
	}
}

func TestFileStore_DeleteIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put("history", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete("history"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := store.Delete("history"); err != nil {
		t.Errorf("Second Delete should be a no-op, got %v", err)
	}

	_, ok, _ := store.Get("history")
	if ok {
		t.Error("Expected key to be gone after Delete")
	}
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put("history", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("Expected no temp files after Put, found %v", matches)
	}
}

func TestDefaultDataDir_Override(t *testing.T) {
	t.Setenv("EASYRX_DATA_DIR", filepath.Join(os.TempDir(), "easyrx-test"))

	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("DefaultDataDir failed: %v", err)
	}
	if dir != filepath.Join(os.TempDir(), "easyrx-test") {
		t.Errorf("Expected env override to win, got %s", dir)
	}
}

func TestMemStore_RoundTrip(t *testing.T) {
	store := NewMemStore()

	if err := store.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, ok, err := store.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(data) != "v" {
		t.Errorf("Expected v, got %s", data)
	}

	// Mutating the returned slice must not leak into the store.
	data[0] = 'x'
	again, _, _ := store.Get("k")
	if string(again) != "v" {
		t.Errorf("Expected stored value to be unaffected by caller mutation, got %s", again)
	}

	if err := store.Delete("k"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Error("Expected key to be gone after Delete")
	}
}
