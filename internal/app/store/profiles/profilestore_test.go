package profilestore_test

import (
	"errors"
	"testing"

	profilestore "github.com/dalemusser/commonshub/internal/app/store/profiles"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/dalemusser/commonshub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Profile{
		FullName: "Pat Example",
		Email:    "pat@example.com",
		Vouched:  true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "pat@example.com" {
		t.Errorf("email: got %q", got.Email)
	}
	if !got.Vouched {
		t.Error("expected vouched profile")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Profile{FullName: "Pat", Email: "pat@example.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Profile{FullName: "Other Pat", Email: "pat@example.com"})
	if !errors.Is(err, profilestore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_SetVouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Profile{FullName: "Newbie", Email: "new@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.SetVouched(ctx, created.ID, true); err != nil {
		t.Fatalf("SetVouched failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Vouched {
		t.Error("expected profile to be vouched")
	}
}
