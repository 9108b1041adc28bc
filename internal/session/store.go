// Package session holds the authenticated user's session as an
// immutable snapshot persisted across restarts. The snapshot is
// replaced wholesale on login and logout; there is no partial mutation.
package session

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
)

var snapshotKey = []byte("session")

// Snapshot is one immutable view of the session. The zero value is the
// logged-out state.
type Snapshot struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	LoggedIn bool   `json:"logged_in"`
}

// Store persists the session snapshot in a local BadgerDB and notifies
// subscribers when the snapshot is replaced.
type Store struct {
	db *badger.DB

	mu   sync.RWMutex
	cur  Snapshot
	subs []func(Snapshot)
}

// Open opens (or creates) the store under dir and loads any persisted
// snapshot, so a stored token survives restarts.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir)).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}

	s := &Store{db: db}

	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &s.cur)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Snapshot returns the current session snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Token returns the current bearer credential, empty when logged out.
// Satisfies the API client's TokenSource.
func (s *Store) Token() string {
	return s.Snapshot().Token
}

// Login replaces the session with the given snapshot, persists it and
// notifies subscribers.
func (s *Store) Login(snap Snapshot) error {
	snap.LoggedIn = snap.Token != ""
	return s.replace(snap)
}

// Logout clears the session, persists the cleared state and notifies
// subscribers.
func (s *Store) Logout() error {
	return s.replace(Snapshot{})
}

// Subscribe registers a callback fired after every snapshot replace.
// Callbacks run synchronously on the replacing goroutine.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) replace(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.cur = snap
	subs := append([]func(Snapshot){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}
