package skills_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/commonshub/internal/app/features/skills"
	"github.com/dalemusser/commonshub/internal/app/membership"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/dalemusser/commonshub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (chi.Router, *membership.Service, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rec := testutil.NewTriggerRecorder()
	svc := membership.NewService(db, rec, rec, zap.NewNop())
	h := skills.NewHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Mount("/skills", skills.Routes(h))
	return r, svc, testutil.NewFixtures(t, db)
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	r, _, _ := newRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/skills", `{"name":"Rust"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var sk models.Skill
	if err := json.NewDecoder(rec.Body).Decode(&sk); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if sk.Name != "rust" {
		t.Errorf("name: got %q", sk.Name)
	}
	if sk.URL == "" {
		t.Error("expected slug in response")
	}

	rec = doJSON(t, r, http.MethodPost, "/skills", `{"name":"rust"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServeSearch(t *testing.T) {
	r, _, fixtures := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateSkill(ctx, "python")
	fixtures.CreateSkill(ctx, "javascript")

	rec := doJSON(t, r, http.MethodGet, "/skills?search=py", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var results []models.Skill
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "python" {
		t.Errorf("results: got %+v", results)
	}

	// Search term is mandatory for the collection endpoint.
	rec = doJSON(t, r, http.MethodGet, "/skills", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing search status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleJoinLeave(t *testing.T) {
	r, svc, fixtures := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sk := fixtures.CreateSkill(ctx, "golang")
	p := fixtures.CreateProfile(ctx, "Ann Chovey", "ann@example.com")

	body := fmt.Sprintf(`{"user_id":%q}`, p.ID.Hex())

	rec := doJSON(t, r, http.MethodPost, "/skills/"+sk.URL+"/join", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("join status: got %d (%s)", rec.Code, rec.Body.String())
	}
	has, err := svc.HasSkill(ctx, sk.ID, p.ID)
	if err != nil {
		t.Fatalf("HasSkill failed: %v", err)
	}
	if !has {
		t.Error("expected skill link after join")
	}

	// Already tagged, join is refused.
	rec = doJSON(t, r, http.MethodPost, "/skills/"+sk.URL+"/join", body)
	if rec.Code != http.StatusForbidden {
		t.Errorf("rejoin status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = doJSON(t, r, http.MethodPost, "/skills/"+sk.URL+"/leave", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("leave status: got %d (%s)", rec.Code, rec.Body.String())
	}
	has, err = svc.HasSkill(ctx, sk.ID, p.ID)
	if err != nil {
		t.Fatalf("HasSkill failed: %v", err)
	}
	if has {
		t.Error("expected skill link gone after leave")
	}

	// Not tagged anymore, leave is refused.
	rec = doJSON(t, r, http.MethodPost, "/skills/"+sk.URL+"/leave", body)
	if rec.Code != http.StatusForbidden {
		t.Errorf("re-leave status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleJoin_Unvouched(t *testing.T) {
	r, _, fixtures := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sk := fixtures.CreateSkill(ctx, "kubernetes")
	p := fixtures.CreateUnvouchedProfile(ctx, "New Person", "new@example.com")

	body := fmt.Sprintf(`{"user_id":%q}`, p.ID.Hex())
	rec := doJSON(t, r, http.MethodPost, "/skills/"+sk.URL+"/join", body)
	if rec.Code != http.StatusForbidden {
		t.Errorf("unvouched join status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleMerge(t *testing.T) {
	r, svc, fixtures := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fixtures.CreateSkill(ctx, "javascript")
	source := fixtures.CreateSkill(ctx, "ecmascript")
	p := fixtures.CreateProfile(ctx, "Ann Chovey", "ann@example.com")
	fixtures.CreateSkillMember(ctx, source.ID, p.ID)

	body := fmt.Sprintf(`{"target_id":%q,"source_ids":[%q]}`, target.ID.Hex(), source.ID.Hex())
	rec := doJSON(t, r, http.MethodPost, "/skills/merge", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("merge status: got %d (%s)", rec.Code, rec.Body.String())
	}

	has, err := svc.HasSkill(ctx, target.ID, p.ID)
	if err != nil {
		t.Fatalf("HasSkill failed: %v", err)
	}
	if !has {
		t.Error("expected member carried over to target")
	}

	// The absorbed slug resolves to the target.
	rec = doJSON(t, r, http.MethodGet, "/skills/"+source.URL, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("absorbed slug status: got %d", rec.Code)
	}
	var got models.Skill
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if got.ID != target.ID {
		t.Errorf("absorbed slug resolved to %s, want %s", got.ID.Hex(), target.ID.Hex())
	}
}
