package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())

	in := &Settings{
		AccessToken:    "tok",
		WatchedUserID:  "u1",
		PollIntervalMs: 300_000,
		BoardID:        "b1",
		PriorityColumn: "priority",
		DateColumn:     "date4",
		StatusColumn:   "status",
		PersonColumn:   "person",
	}
	if err := store.Save("alice", in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := store.Load("alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *out != *in {
		t.Errorf("Load() = %+v, want %+v", out, in)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())
	_, err := store.Load("nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileStorePerUserDocuments(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())

	if err := store.Save("alice", &Settings{AccessToken: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("bob", &Settings{AccessToken: "b"}); err != nil {
		t.Fatal(err)
	}

	a, err := store.Load("alice")
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.Load("bob")
	if err != nil {
		t.Fatal(err)
	}
	if a.AccessToken != "a" || b.AccessToken != "b" {
		t.Errorf("documents mixed: alice=%q bob=%q", a.AccessToken, b.AccessToken)
	}
}

func TestFileStorePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStoreAt(dir)
	if err := store.Save("alice", &Settings{AccessToken: "secret"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(store.Path("alice"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStoreAt(dir)
	if err := os.WriteFile(filepath.Join(dir, "settings-alice.json"), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load("alice"); err == nil {
		t.Error("Load() error = nil for corrupt document")
	}
}

func TestHomeDirOverride(t *testing.T) {
	t.Setenv("TASKPURGE_HOME", "/tmp/tp-test-home")
	dir, err := HomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/tp-test-home" {
		t.Errorf("HomeDir() = %q", dir)
	}
}
