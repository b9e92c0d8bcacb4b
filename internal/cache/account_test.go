package cache

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/LanderDK/blitzware-client/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testAccount() models.Account {
	return models.Account{
		ID:             "u1",
		Username:       "lander",
		Email:          "lander@example.com",
		Roles:          []string{"admin", "beta"},
		CreationDate:   "2023-04-01T12:00:00Z",
		ProfilePicture: `{"url":"data:image/png;base64,AAAA"}`,
		EmailVerified:  true,
		Enabled:        true,
		Token:          "t1",
	}
}

func TestAccountRoundTrip_NarrowsRoles(t *testing.T) {
	db := openTestDB(t)
	c := NewAccountCache(db)
	ctx := context.Background()

	in := testAccount()
	if err := c.InsertAccount(ctx, in); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := c.GetAccount(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	want := in
	want.Roles = []string{"admin"} // only the primary role survives
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetAccount = %+v; want %+v", got, want)
	}
}

func TestAccountInsert_NonEmptyStoreIsNoop(t *testing.T) {
	db := openTestDB(t)
	c := NewAccountCache(db)
	ctx := context.Background()

	if err := c.InsertAccount(ctx, testAccount()); err != nil {
		t.Fatalf("insert: %v", err)
	}

	other := testAccount()
	other.ID = "u2"
	other.Username = "intruder"
	if err := c.InsertAccount(ctx, other); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	got, err := c.GetAccount(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("cached id = %q; want %q (insert must not replace)", got.ID, "u1")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("accounts rows = %d; want 1", count)
	}
}

func TestAccountUpdate_ReplacesInPlace(t *testing.T) {
	db := openTestDB(t)
	c := NewAccountCache(db)
	ctx := context.Background()

	if err := c.InsertAccount(ctx, testAccount()); err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated := testAccount()
	updated.Email = "new@example.com"
	updated.TwoFactorAuth = true
	if err := c.UpdateAccount(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.GetAccount(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "new@example.com" || !got.TwoFactorAuth {
		t.Errorf("update not visible: got %+v", got)
	}
}

func TestAccountUpdate_EmptyStoreCreatesNothing(t *testing.T) {
	db := openTestDB(t)
	c := NewAccountCache(db)
	ctx := context.Background()

	if err := c.UpdateAccount(ctx, testAccount()); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := c.GetAccount(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAccount error = %v; want ErrNotFound", err)
	}
}

func TestGetAccount_EmptyIsFatal(t *testing.T) {
	db := openTestDB(t)
	c := NewAccountCache(db)

	_, err := c.GetAccount(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAccount error = %v; want ErrNotFound", err)
	}
}

func TestDeleteAccountEntry_Idempotent(t *testing.T) {
	db := openTestDB(t)
	c := NewAccountCache(db)
	ctx := context.Background()

	if err := c.InsertAccount(ctx, testAccount()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := c.DeleteAccountEntry(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.DeleteAccountEntry(ctx); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := c.GetAccount(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAccount error = %v; want ErrNotFound", err)
	}
}
