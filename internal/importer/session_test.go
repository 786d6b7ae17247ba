package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	s, err := NewSessionStore(t.TempDir())
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	return s
}

func TestSessionStore_NewSessionPath(t *testing.T) {
	t.Parallel()

	s := newSessionStore(t)
	token, path := s.NewSessionPath("家計簿2024.xlsx")

	if strings.ContainsAny(token, `/\`) {
		t.Fatalf("token contains separator: %q", token)
	}
	if !strings.HasSuffix(token, ".xlsx") {
		t.Fatalf("token lost extension: %q", token)
	}
	if filepath.Base(path) != token {
		t.Fatalf("path %q does not end with token %q", path, token)
	}

	// 同じ元ファイル名でも毎回別トークン
	token2, _ := s.NewSessionPath("家計簿2024.xlsx")
	if token == token2 {
		t.Fatalf("tokens collide: %q", token)
	}
}

func TestSessionStore_Resolve(t *testing.T) {
	t.Parallel()

	s := newSessionStore(t)
	token, path := s.NewSessionPath("book.xlsx")
	if err := os.WriteFile(path, []byte("dummy"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := s.Resolve(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != path {
		t.Fatalf("resolved %q, want %q", got, path)
	}

	// パス区切りを含むトークンは拒否（ディレクトリトラバーサル対策）
	for _, bad := range []string{"../" + token, "a/b.xlsx", `..\evil.xlsx`, ""} {
		if _, err := s.Resolve(bad); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("Resolve(%q) = %v, want ErrSessionNotFound", bad, err)
		}
	}

	// 存在しないファイル
	if _, err := s.Resolve("no-such-file.xlsx"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_RemoveMakesSessionSingleUse(t *testing.T) {
	t.Parallel()

	s := newSessionStore(t)
	token, path := s.NewSessionPath("book.xlsx")
	if err := os.WriteFile(path, []byte("dummy"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s.Remove(token)

	if _, err := s.Resolve(token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound after remove, got %v", err)
	}
}
