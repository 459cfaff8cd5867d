package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/dalemusser/commonshub/internal/app/store/groups"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/dalemusser/commonshub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{
		Name:            "Engineering",
		Description:     "All things engineering",
		MembersCanLeave: true,
		Visible:         true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "engineering" {
		t.Errorf("name: got %q, want lowercased %q", created.Name, "engineering")
	}
	if created.URL == "" {
		t.Error("expected URL slug to be assigned on first save")
	}
	if created.AcceptingNewMembers != models.AcceptingYes {
		t.Errorf("accepting: got %q, want default %q", created.AcceptingNewMembers, models.AcceptingYes)
	}

	// Exactly one alias row exists for the new group.
	count, err := db.Collection("group_aliases").CountDocuments(ctx, bson.M{"owner_id": created.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 alias, got %d", count)
	}
}

func TestStore_Create_SlugStableAcrossReload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "Security Team", Visible: true, MembersCanLeave: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.URL != created.URL {
		t.Errorf("slug not stable: got %q, want %q", got.URL, created.URL)
	}
}

func TestStore_Create_NameCollidesWithOtherGroupsAlias(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Group{Name: "engineering", Visible: true, MembersCanLeave: true}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Case-insensitive collision with the first group's alias.
	_, err := store.Create(ctx, models.Group{Name: "ENGINEERING", Visible: true, MembersCanLeave: true})
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "name" {
		t.Errorf("validation field: got %q, want %q", ve.Field, "name")
	}
}

func TestStore_Create_SanitizesDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{
		Name:        "markup",
		Description: `safe <script>alert("x")</script>text`,
		Visible:     true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Description != "safe text" {
		t.Errorf("description: got %q, want markup stripped", created.Description)
	}
}

func TestStore_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	eng := fixtures.CreateGroup(ctx, "engineering")
	fixtures.CreateGroup(ctx, "design")
	hidden := fixtures.CreateGroupWith(ctx, "secret engineering", func(g *models.Group) {
		g.Visible = false
	})

	got, err := store.Search(ctx, "ENG")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 visible match, got %d", len(got))
	}
	if got[0].ID != eng.ID {
		t.Errorf("matched group: got %v, want %v", got[0].ID, eng.ID)
	}
	for _, g := range got {
		if g.ID == hidden.ID {
			t.Error("invisible group leaked into search results")
		}
	}
}

func TestStore_Search_DeduplicatesMultiAliasMatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, "engineering")
	// A second alias that also matches the query.
	fixtures.CreateAlias(ctx, "group_aliases", "platform engineering", g.ID)

	got, err := store.Search(ctx, "eng")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 deduplicated result, got %d", len(got))
	}
}

func TestStore_Search_OrderedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateGroup(ctx, "web engineering")
	fixtures.CreateGroup(ctx, "core engineering")

	got, err := store.Search(ctx, "engineering")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "core engineering" || got[1].Name != "web engineering" {
		t.Errorf("unexpected order: %q then %q", got[0].Name, got[1].Name)
	}
}

func TestStore_GetByURL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "Functional Area", Visible: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByURL(ctx, created.URL)
	if err != nil {
		t.Fatalf("GetByURL failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByURL: got %v, want %v", got.ID, created.ID)
	}
}

func TestStore_UpdateInfo_RenameKeepsSlugAndOldName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "old guard", Visible: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.UpdateInfo(ctx, created.ID, "New Guard", "renamed"); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "new guard" {
		t.Errorf("name: got %q, want %q", got.Name, "new guard")
	}
	if got.URL != created.URL {
		t.Errorf("slug changed on rename: got %q, want %q", got.URL, created.URL)
	}

	// The old name still resolves through its alias.
	byOld, err := store.GetByURL(ctx, created.URL)
	if err != nil {
		t.Fatalf("GetByURL(old slug) failed: %v", err)
	}
	if byOld.ID != created.ID {
		t.Errorf("old slug resolves to %v, want %v", byOld.ID, created.ID)
	}

	// And searching the new name finds the group too.
	found, err := store.Search(ctx, "new guard")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Errorf("search by new name: got %v", found)
	}
}

func TestStore_FunctionalAreaQueries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	curator := fixtures.CreateProfile(ctx, "Cora Curator", "cora@example.com")

	fa := fixtures.CreateGroupWith(ctx, "marketing", func(g *models.Group) {
		g.FunctionalArea = true
	})
	curated := fixtures.CreateGroupWith(ctx, "book club", func(g *models.Group) {
		g.CuratorID = &curator.ID
	})
	plain := fixtures.CreateGroup(ctx, "misc")
	fixtures.CreateGroupWith(ctx, "hidden fa", func(g *models.Group) {
		g.FunctionalArea = true
		g.Visible = false
	})

	fas, err := store.FunctionalAreas(ctx)
	if err != nil {
		t.Fatalf("FunctionalAreas failed: %v", err)
	}
	if len(fas) != 1 || fas[0].ID != fa.ID {
		t.Errorf("FunctionalAreas: got %d results", len(fas))
	}

	nonFAs, err := store.NonFunctionalAreas(ctx, nil)
	if err != nil {
		t.Fatalf("NonFunctionalAreas failed: %v", err)
	}
	if len(nonFAs) != 2 {
		t.Errorf("NonFunctionalAreas: got %d, want 2", len(nonFAs))
	}

	cur, err := store.Curated(ctx)
	if err != nil {
		t.Fatalf("Curated failed: %v", err)
	}
	if len(cur) != 1 || cur[0].ID != curated.ID {
		t.Errorf("Curated: got %d results", len(cur))
	}
	for _, g := range cur {
		if g.ID == plain.ID {
			t.Error("uncurated group in Curated results")
		}
	}
}

func TestStore_ClearCurator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	curator := fixtures.CreateProfile(ctx, "Cora Curator", "cora@example.com")
	g := fixtures.CreateGroupWith(ctx, "book club", func(g *models.Group) {
		g.CuratorID = &curator.ID
	})

	cleared, err := store.ClearCurator(ctx, curator.ID)
	if err != nil {
		t.Fatalf("ClearCurator failed: %v", err)
	}
	if cleared != 1 {
		t.Errorf("cleared: got %d, want 1", cleared)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CuratorID != nil {
		t.Error("curator reference should be cleared")
	}
}
