package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/LanderDK/blitzware-client/internal/models"
)

func testApplication(id, name string) models.Application {
	lvl := 5
	return models.Application{
		ID:             id,
		Name:           name,
		Secret:         "s3cr3t",
		Version:        "2.1",
		Status:         true,
		HwidCheck:      true,
		ProgramHash:    "abc123",
		AdminRoleLevel: &lvl,
		Owner:          models.AccountSummary{ID: "stale-owner", Name: "stale"},
	}
}

func TestApplicationRoundTrip_OwnerRehydrated(t *testing.T) {
	db := openTestDB(t)
	c := NewApplicationCache(db)
	ctx := context.Background()

	in := testApplication("app1", "Loader")
	if err := c.InsertSelectedApplication(ctx, in); err != nil {
		t.Fatalf("insert: %v", err)
	}

	owner := models.Account{ID: "u1", Username: "lander"}
	got, err := c.GetSelectedApplication(ctx, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// The stale owner stored at insert time must never surface.
	want := in
	want.Owner = models.AccountSummary{ID: "u1", Name: "lander"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetSelectedApplication = %+v; want %+v", got, want)
	}
}

func TestSelection_ReplaceAllNeverMerges(t *testing.T) {
	db := openTestDB(t)
	c := NewApplicationCache(db)
	ctx := context.Background()
	owner := models.Account{ID: "u1", Username: "lander"}

	a := testApplication("app-a", "Alpha")
	if err := c.InsertSelectedApplication(ctx, a); err != nil {
		t.Fatalf("insert a: %v", err)
	}

	// replace-all: delete then insert
	b := testApplication("app-b", "Beta")
	b.ProgramHash = ""
	b.AdminRoleLevel = nil
	if err := c.DeleteAll(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.InsertSelectedApplication(ctx, b); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	got, err := c.GetSelectedApplication(ctx, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "app-b" || got.Name != "Beta" {
		t.Errorf("selected = %s/%s; want app-b/Beta", got.ID, got.Name)
	}
	if got.ProgramHash != "" || got.AdminRoleLevel != nil {
		t.Errorf("fields of the previous selection leaked into %+v", got)
	}
}

func TestApplicationUpdate_FieldLevelChange(t *testing.T) {
	db := openTestDB(t)
	c := NewApplicationCache(db)
	ctx := context.Background()
	owner := models.Account{ID: "u1", Username: "lander"}

	app := testApplication("app1", "Loader")
	if err := c.InsertSelectedApplication(ctx, app); err != nil {
		t.Fatalf("insert: %v", err)
	}

	app.Status = false
	app.Version = "2.2"
	if err := c.UpdateSelectedApplication(ctx, app); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.GetSelectedApplication(ctx, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status || got.Version != "2.2" {
		t.Errorf("update not visible: got %+v", got)
	}
}

func TestGetSelectedApplication_EmptyIsFatal(t *testing.T) {
	db := openTestDB(t)
	c := NewApplicationCache(db)

	_, err := c.GetSelectedApplication(context.Background(), models.Account{ID: "u1"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSelectedApplication error = %v; want ErrNotFound", err)
	}
}
