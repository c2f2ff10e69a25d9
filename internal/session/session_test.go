package session

import (
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(OpenOptions{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.Token(); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	if err := s.SetToken("jwt-abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.Token()
	if err != nil || !ok || got != "jwt-abc" {
		t.Fatalf("get: got=%q ok=%v err=%v", got, ok, err)
	}

	if err := s.SetToken("jwt-def"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _, _ := s.Token(); got != "jwt-def" {
		t.Fatalf("overwrite readback: %q", got)
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	if err := s.SetToken("jwt"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Token(); ok {
		t.Fatal("token survived clear")
	}

	// Clearing an already-empty store is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(OpenOptions{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetToken("persisted"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(OpenOptions{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if got, ok, _ := s2.Token(); !ok || got != "persisted" {
		t.Fatalf("reopen: got=%q ok=%v", got, ok)
	}
}

func TestEncryptedStore(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	s, err := Open(OpenOptions{Path: t.TempDir(), EncryptionKey: key})
	if err != nil {
		t.Fatalf("open encrypted: %v", err)
	}
	defer s.Close()
	if err := s.SetToken("secret"); err != nil {
		t.Fatal(err)
	}
	if got, ok, _ := s.Token(); !ok || got != "secret" {
		t.Fatalf("encrypted readback: got=%q ok=%v", got, ok)
	}
}

func TestParseKey(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(200 - i)
	}

	if got, err := ParseKey(hex.EncodeToString(raw)); err != nil || !equalBytes(got, raw) {
		t.Errorf("hex key: err=%v", err)
	}
	if got, err := ParseKey(base64.StdEncoding.EncodeToString(raw)); err != nil || !equalBytes(got, raw) {
		t.Errorf("base64 key: err=%v", err)
	}
	if _, err := ParseKey("too short"); err == nil {
		t.Error("short key should fail")
	}
	if _, err := ParseKey(hex.EncodeToString(raw[:16])); err == nil {
		t.Error("16-byte key should fail")
	}
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
