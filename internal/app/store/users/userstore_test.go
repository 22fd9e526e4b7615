package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/tenanthub/internal/app/store/users"
	"github.com/dalemusser/tenanthub/internal/testutil"
)

func TestCreateAndGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := userstore.New(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	created, err := s.Create(ctx, "Jane@Acme.com", "bcrypt-hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "Jane@Acme.com" {
		t.Errorf("email stored as %q, want original casing preserved", created.Email)
	}
	if created.EmailCI != "jane@acme.com" {
		t.Errorf("email_ci: got %q, want %q", created.EmailCI, "jane@acme.com")
	}

	// Lookup is case-insensitive.
	got, err := s.GetByEmail(ctx, "JANE@ACME.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("lookup returned a different user: %s vs %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestCreate_DuplicateEmail_ErrEmailTaken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := userstore.New(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	if _, err := s.Create(ctx, "jane@acme.com", "hash-1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.Create(ctx, "JANE@acme.com", "hash-2")
	if !errors.Is(err, userstore.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken for case-variant duplicate, got %v", err)
	}
}

func TestGetByEmail_Missing_ErrNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := userstore.New(db)

	_, err := s.GetByEmail(ctx, "nobody@nowhere.com")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID_BadHex_ErrNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := userstore.New(db)

	_, err := s.GetByID(ctx, "not-a-hex-id")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
}
