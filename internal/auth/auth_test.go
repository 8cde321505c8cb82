package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPlainTextStorageRoundTrip(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	storage := NewPlainTextStorage()

	got, err := storage.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("empty dir yielded session %+v", got)
	}

	loginAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	want := &Session{
		Authenticated: true,
		Mode:          "ldap",
		Username:      "boris",
		ServerURL:     "https://console.example.com",
		LoginAt:       &loginAt,
	}
	if err := storage.Store(want); err != nil {
		t.Fatal(err)
	}

	got, err = storage.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("stored session not found")
	}
	if got.Username != "boris" || got.Mode != "ldap" || !got.Authenticated {
		t.Errorf("session = %+v, want %+v", got, want)
	}
	if got.LoginAt == nil || !got.LoginAt.Equal(loginAt) {
		t.Errorf("LoginAt = %v, want %v", got.LoginAt, loginAt)
	}

	if err := storage.Delete(); err != nil {
		t.Fatal(err)
	}
	got, err = storage.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("session survived delete: %+v", got)
	}
	// Deleting again is not an error.
	if err := storage.Delete(); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestPlainTextStorageFilePermissions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	storage := NewPlainTextStorage()
	if err := storage.Store(&Session{Authenticated: true}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dir, "session"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestPlainTextStorageCorruptedFileRemoved(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	path := filepath.Join(dir, "session")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewPlainTextStorage().Get(); err == nil {
		t.Fatal("corrupted session file yielded no error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupted session file not removed")
	}
}

func TestSessionStorePersistsDetails(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	storage := NewPlainTextStorage()

	loginAt := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	store := NewSessionStore(storage,
		WithSessionDetails("local", "", "https://console.example.com"),
		WithClock(func() time.Time { return loginAt }))

	ok, err := store.Authenticated()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("fresh store reports authenticated")
	}

	if err := store.SetAuthenticated(context.Background()); err != nil {
		t.Fatal(err)
	}

	ok, err = store.Authenticated()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("store not authenticated after SetAuthenticated")
	}

	session, err := storage.Get()
	if err != nil {
		t.Fatal(err)
	}
	if session.Mode != "local" || session.ServerURL != "https://console.example.com" {
		t.Errorf("session = %+v", session)
	}
	if session.LoginAt == nil || !session.LoginAt.Equal(loginAt) {
		t.Errorf("LoginAt = %v, want %v", session.LoginAt, loginAt)
	}
}

func TestSessionStoreDescribeOverridesDetails(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	storage := NewPlainTextStorage()
	store := NewSessionStore(storage)

	// The login flow learns mode and username only after the probe.
	store.Describe("ldap", "boris")
	if err := store.SetAuthenticated(context.Background()); err != nil {
		t.Fatal(err)
	}

	session, err := storage.Get()
	if err != nil {
		t.Fatal(err)
	}
	if session.Mode != "ldap" || session.Username != "boris" {
		t.Errorf("session = %+v, want ldap/boris", session)
	}
}

func TestSessionStoreFakeBackendWritesCookieMarker(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	store := NewSessionStore(NewPlainTextStorage(), WithFakeBackend())

	if err := store.SetAuthenticated(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "session-cookie")); err != nil {
		t.Errorf("cookie marker not written: %v", err)
	}
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		session *ResolvedSession
		want    bool
	}{
		{"nil session", nil, false},
		{"stored but not authenticated", &ResolvedSession{}, false},
		{
			"authenticated",
			&ResolvedSession{Session: Session{Authenticated: true}, Source: PlainTextSessionSource},
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthenticated(tc.session); got != tc.want {
				t.Errorf("IsAuthenticated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClientDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	got, err := ClientDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("ClientDir = %q, want %q", got, dir)
	}
}
