// internal/app/policy/grouppolicy/grouppolicy.go

// Package grouppolicy holds the join/leave eligibility predicates that
// drive the membership state machine. Policies are pure questions: they
// never mutate and return (bool, error) so callers can distinguish "not
// allowed" from "lookup failed".
package grouppolicy

import (
	"context"

	"github.com/dalemusser/commonshub/internal/app/membership"
	"github.com/dalemusser/commonshub/internal/domain/models"
)

// CanJoin reports whether profile may join (or request to join) the
// group: the profile must be vouched, the group must accept new members
// in some form, and the profile must not already be a member or pending
// member.
func CanJoin(ctx context.Context, svc *membership.Service, group models.Group, profile models.Profile) (bool, error) {
	if !profile.Vouched {
		return false, nil
	}
	if group.Accepting() == models.AcceptingNo {
		return false, nil
	}
	isMember, err := svc.HasMember(ctx, group.ID, profile.ID)
	if err != nil {
		return false, err
	}
	isPending, err := svc.HasPendingMember(ctx, group.ID, profile.ID)
	if err != nil {
		return false, err
	}
	return !isMember && !isPending, nil
}

// CanLeave reports whether profile may leave the group: the group must
// allow leaving, the profile must not be its curator, and the profile
// must actually belong (member or pending).
func CanLeave(ctx context.Context, svc *membership.Service, group models.Group, profile models.Profile) (bool, error) {
	if !group.MembersCanLeave {
		return false, nil
	}
	if group.IsCurator(profile.ID) {
		return false, nil
	}
	isMember, err := svc.HasMember(ctx, group.ID, profile.ID)
	if err != nil {
		return false, err
	}
	isPending, err := svc.HasPendingMember(ctx, group.ID, profile.ID)
	if err != nil {
		return false, err
	}
	return isMember || isPending, nil
}

// JoinStatus maps the group's join policy to the status a new joiner
// gets: open groups admit members directly, by-request groups queue a
// pending row for the curator. Callers must check CanJoin first.
func JoinStatus(group models.Group) string {
	if group.Accepting() == models.AcceptingByRequest {
		return models.StatusPending
	}
	return models.StatusMember
}

// CanJoinSkill reports whether profile may tag itself with a skill:
// vouched and not already tagged. Skills have no join policy and no
// pending queue.
func CanJoinSkill(ctx context.Context, svc *membership.Service, skill models.Skill, profile models.Profile) (bool, error) {
	if !profile.Vouched {
		return false, nil
	}
	has, err := svc.HasSkill(ctx, skill.ID, profile.ID)
	if err != nil {
		return false, err
	}
	return !has, nil
}

// CanLeaveSkill reports whether profile may drop a skill. Skills have no
// curator and always allow leaving, so membership is the only question.
func CanLeaveSkill(ctx context.Context, svc *membership.Service, skill models.Skill, profile models.Profile) (bool, error) {
	return svc.HasSkill(ctx, skill.ID, profile.ID)
}
