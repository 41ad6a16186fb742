package session_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/session"
)

type fakeAuth struct {
	loginResult api.LoginResult
	loginErr    error
	verifyUser  content.User
	verifyErr   error
	verified    []string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (api.LoginResult, error) {
	if f.loginErr != nil {
		return api.LoginResult{}, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuth) Verify(ctx context.Context, token string) (content.User, error) {
	f.verified = append(f.verified, token)
	if f.verifyErr != nil {
		return content.User{}, f.verifyErr
	}
	return f.verifyUser, nil
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	storage := session.NewMemoryTokenStorage()
	auth := &fakeAuth{loginResult: api.LoginResult{
		Token: "tok-1",
		User:  content.User{ID: "u1", Email: "admin@example.com", Role: content.RoleAdmin},
	}}
	store := session.NewStore(storage, auth)

	user, err := store.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("user = %+v", user)
	}
	if !store.Authenticated() || store.Token() != "tok-1" {
		t.Fatal("expected authenticated session")
	}
	if saved, err := storage.Load(); err != nil || saved != "tok-1" {
		t.Fatalf("stored token = %q, %v", saved, err)
	}
}

func TestRestoreWithNoStoredTokenStaysSignedOut(t *testing.T) {
	auth := &fakeAuth{}
	store := session.NewStore(session.NewMemoryTokenStorage(), auth)

	store.Restore(context.Background())
	if store.Authenticated() {
		t.Fatal("expected signed-out session")
	}
	if len(auth.verified) != 0 {
		t.Fatal("expected no verification call")
	}
}

func TestRestoreClearsRejectedToken(t *testing.T) {
	storage := session.NewMemoryTokenStorage()
	if err := storage.Save("stale"); err != nil {
		t.Fatal(err)
	}
	auth := &fakeAuth{verifyErr: fmt.Errorf("%w: expired", api.ErrUnauthenticated)}
	store := session.NewStore(storage, auth)

	store.Restore(context.Background())
	if store.Authenticated() {
		t.Fatal("expected signed-out session")
	}
	if _, err := storage.Load(); !errors.Is(err, session.ErrNoStoredToken) {
		t.Fatalf("expected cleared storage, got %v", err)
	}
}

func TestRestoreDiscardsTokenOnNetworkFailure(t *testing.T) {
	storage := session.NewMemoryTokenStorage()
	if err := storage.Save("tok-stale"); err != nil {
		t.Fatal(err)
	}
	auth := &fakeAuth{verifyErr: fmt.Errorf("%w: dial refused", api.ErrNetwork)}
	store := session.NewStore(storage, auth)

	store.Restore(context.Background())
	if store.Authenticated() {
		t.Fatal("expected signed-out session")
	}
	if _, err := storage.Load(); !errors.Is(err, session.ErrNoStoredToken) {
		t.Fatalf("expected cleared storage, got %v", err)
	}
}

func TestRestoreAdoptsVerifiedToken(t *testing.T) {
	storage := session.NewMemoryTokenStorage()
	if err := storage.Save("tok-ok"); err != nil {
		t.Fatal(err)
	}
	auth := &fakeAuth{verifyUser: content.User{ID: "u2", Email: "editor@example.com", Role: content.RoleEditor}}
	store := session.NewStore(storage, auth)

	store.Restore(context.Background())
	if store.Token() != "tok-ok" {
		t.Fatalf("token = %q", store.Token())
	}
	user, ok := store.CurrentUser()
	if !ok || user.Role != content.RoleEditor {
		t.Fatalf("user = %+v, %v", user, ok)
	}
}

func TestLogoutIsIdempotentAndFiresHooksOnce(t *testing.T) {
	storage := session.NewMemoryTokenStorage()
	auth := &fakeAuth{loginResult: api.LoginResult{Token: "tok-1", User: content.User{ID: "u1"}}}

	fired := 0
	store := session.NewStore(storage, auth, session.WithLogoutHook(func() { fired++ }))

	if _, err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	store.Logout()
	store.Logout()

	if store.Authenticated() {
		t.Fatal("expected signed-out session")
	}
	if _, ok := store.CurrentUser(); ok {
		t.Fatal("expected no current user")
	}
	if fired != 1 {
		t.Fatalf("logout hooks fired %d times", fired)
	}
	if _, err := storage.Load(); !errors.Is(err, session.ErrNoStoredToken) {
		t.Fatalf("expected cleared storage, got %v", err)
	}
}

func TestInvalidateEndsSession(t *testing.T) {
	storage := session.NewMemoryTokenStorage()
	auth := &fakeAuth{loginResult: api.LoginResult{Token: "tok-1"}}
	store := session.NewStore(storage, auth)

	if _, err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	store.Invalidate()
	if store.Authenticated() {
		t.Fatal("expected session invalidated")
	}
}

func TestFileTokenStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "admin-token")
	storage, err := session.NewFileTokenStorage(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := storage.Load(); !errors.Is(err, session.ErrNoStoredToken) {
		t.Fatalf("expected empty storage, got %v", err)
	}

	if err := storage.Save("tok-file"); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file mode = %v", perm)
	}

	token, err := storage.Load()
	if err != nil || token != "tok-file" {
		t.Fatalf("load = %q, %v", token, err)
	}

	if err := storage.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := storage.Clear(); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	if _, err := storage.Load(); !errors.Is(err, session.ErrNoStoredToken) {
		t.Fatalf("expected cleared storage, got %v", err)
	}
}
