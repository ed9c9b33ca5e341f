package dao

import (
	"errors"
	"testing"

	"github.com/classic-cipher-go/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestUserDAOLifecycle tests create, validate, update and delete
func TestUserDAOLifecycle(t *testing.T) {
	users := NewUserDAO(newTestStore(t))

	if err := users.Create("alice", "correct-horse"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := users.Create("alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate Create = %v, want ErrUserExists", err)
	}

	if err := users.Validate("alice", "correct-horse"); err != nil {
		t.Errorf("Validate with correct password = %v, want nil", err)
	}
	if err := users.Validate("alice", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Validate with wrong password = %v, want ErrInvalidPassword", err)
	}
	if err := users.Validate("bob", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Validate unknown user = %v, want ErrUserNotFound", err)
	}

	if err := users.UpdatePassword("alice", "battery-staple"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if err := users.Validate("alice", "battery-staple"); err != nil {
		t.Errorf("Validate after update = %v, want nil", err)
	}

	if err := users.Delete("alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := users.Get("alice"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Get after delete = %v, want ErrUserNotFound", err)
	}
}

// TestUserDAOPasswordHashing verifies stored hashes are not plaintext
func TestUserDAOPasswordHashing(t *testing.T) {
	users := NewUserDAO(newTestStore(t))

	if err := users.Create("alice", "secret"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	user, err := users.Get("alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Errorf("password stored as %q, want a derived hash", user.PasswordHash)
	}
}

// TestUserDAOEnsureDefaultUser tests admin bootstrap
func TestUserDAOEnsureDefaultUser(t *testing.T) {
	users := NewUserDAO(newTestStore(t))

	if err := users.EnsureDefaultUser(); err != nil {
		t.Fatalf("EnsureDefaultUser failed: %v", err)
	}
	if err := users.Validate("admin", "admin"); err != nil {
		t.Errorf("default admin login = %v, want nil", err)
	}
	// Second call must not reset a changed password.
	if err := users.UpdatePassword("admin", "changed"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if err := users.EnsureDefaultUser(); err != nil {
		t.Fatalf("EnsureDefaultUser failed: %v", err)
	}
	if err := users.Validate("admin", "changed"); err != nil {
		t.Errorf("admin login after re-ensure = %v, want nil", err)
	}
}

// TestBoltProfileStore tests profile CRUD against BoltDB
func TestBoltProfileStore(t *testing.T) {
	profiles := NewBoltProfileStore(newTestStore(t))

	if _, ok := profiles.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}

	p := &Profile{
		Name:     "mail",
		Cipher:   "vigenere",
		Key:      "LEMON",
		Workers:  4,
		Describe: "outbound mail",
		Enable:   true,
	}
	if err := profiles.Set(p); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := profiles.Get("mail")
	if !ok {
		t.Fatal("Get(mail) = false after Set")
	}
	if got.Cipher != "vigenere" || got.Key != "LEMON" || got.Workers != 4 || !got.Enable {
		t.Errorf("Get(mail) = %+v, want %+v", got, p)
	}

	if err := profiles.Set(&Profile{Name: "archive", Cipher: "caesar", Key: "3", Workers: 1, Enable: true}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	all, err := profiles.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 || all[0].Name != "archive" || all[1].Name != "mail" {
		t.Errorf("GetAll returned %d profiles in wrong order", len(all))
	}

	if err := profiles.Delete("mail"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := profiles.Get("mail"); ok {
		t.Error("Get(mail) = true after Delete")
	}
}
