package grouppolicy_test

import (
	"testing"

	"github.com/dalemusser/commonshub/internal/app/membership"
	"github.com/dalemusser/commonshub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/dalemusser/commonshub/internal/testutil"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*membership.Service, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rec := testutil.NewTriggerRecorder()
	return membership.NewService(db, rec, rec, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestCanJoin(t *testing.T) {
	svc, fixtures := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	open := fixtures.CreateGroup(ctx, "engineering")
	closed := fixtures.CreateGroupWith(ctx, "invite only", func(g *models.Group) {
		g.AcceptingNewMembers = models.AcceptingNo
	})
	byRequest := fixtures.CreateGroupWith(ctx, "reviewed", func(g *models.Group) {
		g.AcceptingNewMembers = models.AcceptingByRequest
	})

	vouched := fixtures.CreateProfile(ctx, "Pat", "pat@example.com")
	unvouched := fixtures.CreateUnvouchedProfile(ctx, "Newbie", "new@example.com")

	if ok, err := grouppolicy.CanJoin(ctx, svc, open, vouched); err != nil || !ok {
		t.Errorf("vouched join open: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanJoin(ctx, svc, byRequest, vouched); err != nil || !ok {
		t.Errorf("vouched join by-request: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanJoin(ctx, svc, closed, vouched); err != nil || ok {
		t.Errorf("closed group joinable: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanJoin(ctx, svc, open, unvouched); err != nil || ok {
		t.Errorf("unvouched profile joinable: ok=%v err=%v", ok, err)
	}
}

func TestCanJoin_AlreadyInGroup(t *testing.T) {
	svc, fixtures := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := fixtures.CreateGroup(ctx, "engineering")
	member := fixtures.CreateProfile(ctx, "Member", "m@example.com")
	pending := fixtures.CreateProfile(ctx, "Pending", "p@example.com")

	if err := svc.AddMember(ctx, group, member.ID, models.StatusMember); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := svc.AddMember(ctx, group, pending.ID, models.StatusPending); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	if ok, err := grouppolicy.CanJoin(ctx, svc, group, member); err != nil || ok {
		t.Errorf("member can rejoin: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanJoin(ctx, svc, group, pending); err != nil || ok {
		t.Errorf("pending can rejoin: ok=%v err=%v", ok, err)
	}
}

func TestCanLeave(t *testing.T) {
	svc, fixtures := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	curator := fixtures.CreateProfile(ctx, "Cora", "cora@example.com")
	member := fixtures.CreateProfile(ctx, "Pat", "pat@example.com")
	outsider := fixtures.CreateProfile(ctx, "Out", "out@example.com")

	group := fixtures.CreateGroupWith(ctx, "book club", func(g *models.Group) {
		g.CuratorID = &curator.ID
	})
	locked := fixtures.CreateGroupWith(ctx, "permanent", func(g *models.Group) {
		g.MembersCanLeave = false
	})

	for _, pair := range []struct {
		g models.Group
		p models.Profile
	}{
		{group, curator},
		{group, member},
		{locked, member},
	} {
		if err := svc.AddMember(ctx, pair.g, pair.p.ID, models.StatusMember); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}

	if ok, err := grouppolicy.CanLeave(ctx, svc, group, member); err != nil || !ok {
		t.Errorf("member leave: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanLeave(ctx, svc, group, curator); err != nil || ok {
		t.Errorf("curator can leave own group: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanLeave(ctx, svc, locked, member); err != nil || ok {
		t.Errorf("leave from locked group: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanLeave(ctx, svc, group, outsider); err != nil || ok {
		t.Errorf("outsider leave: ok=%v err=%v", ok, err)
	}
}

func TestCanLeave_PendingRequestWithdrawal(t *testing.T) {
	svc, fixtures := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := fixtures.CreateGroupWith(ctx, "reviewed", func(g *models.Group) {
		g.AcceptingNewMembers = models.AcceptingByRequest
	})
	profile := fixtures.CreateProfile(ctx, "Pat", "pat@example.com")

	if err := svc.AddMember(ctx, group, profile.ID, models.StatusPending); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if ok, err := grouppolicy.CanLeave(ctx, svc, group, profile); err != nil || !ok {
		t.Errorf("pending withdrawal: ok=%v err=%v", ok, err)
	}
}

func TestJoinStatus(t *testing.T) {
	open := models.Group{AcceptingNewMembers: models.AcceptingYes}
	byRequest := models.Group{AcceptingNewMembers: models.AcceptingByRequest}
	unset := models.Group{}

	if got := grouppolicy.JoinStatus(open); got != models.StatusMember {
		t.Errorf("open: got %q", got)
	}
	if got := grouppolicy.JoinStatus(byRequest); got != models.StatusPending {
		t.Errorf("by_request: got %q", got)
	}
	// Groups that never set a policy behave as open.
	if got := grouppolicy.JoinStatus(unset); got != models.StatusMember {
		t.Errorf("unset: got %q", got)
	}
}

func TestSkillPolicies(t *testing.T) {
	svc, fixtures := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	skill := fixtures.CreateSkill(ctx, "python")
	vouched := fixtures.CreateProfile(ctx, "Pat", "pat@example.com")
	unvouched := fixtures.CreateUnvouchedProfile(ctx, "Newbie", "new@example.com")

	if ok, err := grouppolicy.CanJoinSkill(ctx, svc, skill, vouched); err != nil || !ok {
		t.Errorf("vouched join skill: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanJoinSkill(ctx, svc, skill, unvouched); err != nil || ok {
		t.Errorf("unvouched join skill: ok=%v err=%v", ok, err)
	}

	if err := svc.AddSkill(ctx, skill.ID, vouched.ID); err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}
	if ok, err := grouppolicy.CanJoinSkill(ctx, svc, skill, vouched); err != nil || ok {
		t.Errorf("tagged profile can retag: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanLeaveSkill(ctx, svc, skill, vouched); err != nil || !ok {
		t.Errorf("tagged profile leave skill: ok=%v err=%v", ok, err)
	}
	if ok, err := grouppolicy.CanLeaveSkill(ctx, svc, skill, unvouched); err != nil || ok {
		t.Errorf("untagged profile leave skill: ok=%v err=%v", ok, err)
	}
}
