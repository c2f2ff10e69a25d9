// Package session persists the admin bearer token between invocations.
//
// The token is the only shared mutable state in the console. It has exactly
// three writer paths: login success, explicit logout, and the 401 handler in
// the API client. Everything else only reads.
package session

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

const tokenKey = "session.token"

// Store is a small badger-backed KV holding the session token.
// Encryption at rest is provided by badger options when a key is supplied,
// not by this wrapper.
type Store struct {
	db *badger.DB
}

type OpenOptions struct {
	Path          string
	EncryptionKey []byte // 32 bytes; nil opens the store unencrypted
}

func Open(opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("session: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).WithLogger(nil)
	if len(opts.EncryptionKey) > 0 {
		// Badger requires an index cache for encrypted workloads.
		bopts = bopts.
			WithEncryptionKey(opts.EncryptionKey).
			WithIndexCacheSize(16 << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Token returns the stored bearer token. The second return is false when the
// store holds no token, which is the logged-out state.
func (s *Store) Token() (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, errors.New("session: not opened")
	}
	var out string
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	if !found || out == "" {
		return "", false, nil
	}
	return out, true, nil
}

// SetToken stores the bearer token. Called on successful login only.
func (s *Store) SetToken(token string) error {
	if s == nil || s.db == nil {
		return errors.New("session: not opened")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session: token is empty")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tokenKey), []byte(token))
	})
}

// Clear removes the stored token. Called on logout and on 401 responses.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return errors.New("session: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(tokenKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// ParseKey decodes a 32-byte encryption key from base64 or hex.
// Returns nil for empty input (store stays unencrypted).
func ParseKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	rawHex := strings.TrimPrefix(raw, "0x")
	if b, err := hex.DecodeString(rawHex); err == nil {
		if len(b) == 32 {
			return b, nil
		}
		return nil, fmt.Errorf("decoded key length must be 32, got %d", len(b))
	}
	if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		if len(b) != 32 {
			return nil, fmt.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	return nil, errors.New("key must be base64(32 bytes) or hex(32 bytes)")
}
