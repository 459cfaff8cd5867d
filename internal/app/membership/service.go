// internal/app/membership/service.go

// Package membership implements the group/skill membership state
// machine. Statuses per (profile, group) pair move absent -> pending ->
// member and never backwards: promotion is the only status change
// AddMember performs, demotion requests are silently ignored, and
// removal deletes the row outright.
package membership

import (
	"context"
	"fmt"

	groupstore "github.com/dalemusser/commonshub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/commonshub/internal/app/store/memberships"
	profilestore "github.com/dalemusser/commonshub/internal/app/store/profiles"
	skillmemberstore "github.com/dalemusser/commonshub/internal/app/store/skillmembers"
	skillstore "github.com/dalemusser/commonshub/internal/app/store/skills"
	"github.com/dalemusser/commonshub/internal/app/system/tasks"
	"github.com/dalemusser/commonshub/internal/app/system/txn"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Service struct {
	client       *mongo.Client
	groups       *groupstore.Store
	skills       *skillstore.Store
	memberships  *membershipstore.Store
	skillMembers *skillmemberstore.Store
	profiles     *profilestore.Store
	notifier     tasks.Notifier
	syncer       tasks.Syncer
	log          *zap.Logger
}

func NewService(db *mongo.Database, notifier tasks.Notifier, syncer tasks.Syncer, logger *zap.Logger) *Service {
	return &Service{
		client:       db.Client(),
		groups:       groupstore.New(db),
		skills:       skillstore.New(db),
		memberships:  membershipstore.New(db),
		skillMembers: skillmemberstore.New(db),
		profiles:     profilestore.New(db),
		notifier:     notifier,
		syncer:       syncer,
		log:          logger,
	}
}

// Groups exposes the group store for read paths (search, listings).
func (s *Service) Groups() *groupstore.Store { return s.groups }

// Skills exposes the skill store.
func (s *Service) Skills() *skillstore.Store { return s.skills }

// Memberships exposes the ledger for read paths.
func (s *Service) Memberships() *membershipstore.Store { return s.memberships }

// SkillMembers exposes the skill member links.
func (s *Service) SkillMembers() *skillmemberstore.Store { return s.skillMembers }

// Profiles exposes the profile store.
func (s *Service) Profiles() *profilestore.Store { return s.profiles }

// AddMember adds userID to the group with the requested status, or
// promotes an existing pending row to member.
//
// Transitions:
//   - absent -> pending|member: row created; external sync fires when the
//     result is a full membership of a functional area.
//   - pending -> member: promotion; sync (functional area) plus a
//     membership-change notification.
//   - same status again: no-op, no triggers.
//   - member -> pending: silently ignored. Status never moves backwards
//     through AddMember; downstream callers rely on the no-op.
func (s *Service) AddMember(ctx context.Context, group models.Group, userID primitive.ObjectID, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid membership status %q", status)
	}

	m, created, err := s.memberships.GetOrCreate(ctx, group.ID, userID, status)
	if err != nil {
		return err
	}

	if created {
		if status == models.StatusMember && group.FunctionalArea {
			s.syncer.SyncProfile(userID)
		}
		return nil
	}

	if m.Status == status {
		return nil
	}

	if m.Status == models.StatusPending && status == models.StatusMember {
		if err := s.memberships.SetStatus(ctx, m.ID, models.StatusMember); err != nil {
			return err
		}
		if group.FunctionalArea {
			s.syncer.SyncProfile(userID)
		}
		s.notifier.MembershipChanged(group.ID, userID, models.StatusPending, models.StatusMember)
		return nil
	}

	// member -> pending: never demote.
	s.log.Debug("ignoring membership demotion",
		zap.String("group_id", group.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	return nil
}

// RemoveMember deletes userID's ledger row for the group. An absent row
// is a no-op. Sync fires for functional areas whether or not
// notifications are wanted; sendEmail only gates the notification
// triggers (denied for pending, removed for member).
func (s *Service) RemoveMember(ctx context.Context, group models.Group, userID primitive.ObjectID, sendEmail bool) error {
	m, err := s.memberships.Get(ctx, group.ID, userID)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.memberships.Delete(ctx, group.ID, userID); err != nil {
		return err
	}

	if group.FunctionalArea {
		s.syncer.SyncProfile(userID)
	}

	if !sendEmail {
		return nil
	}
	switch m.Status {
	case models.StatusPending:
		// Request denied.
		s.notifier.MembershipChanged(group.ID, userID, models.StatusPending, tasks.StatusAbsent)
	case models.StatusMember:
		s.notifier.MemberRemoved(group.ID, userID, m.Status)
	}
	return nil
}

// HasMember reports whether userID is a full member of the group.
func (s *Service) HasMember(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	return s.memberships.ExistsWithStatus(ctx, groupID, userID, models.StatusMember)
}

// HasPendingMember reports whether userID has requested to join the
// group and is awaiting approval.
func (s *Service) HasPendingMember(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	return s.memberships.ExistsWithStatus(ctx, groupID, userID, models.StatusPending)
}

// MergeGroups folds every group in sourceIDs into target. Each source
// ledger row is replayed through AddMember with its existing status, so
// a profile that is a member in one source and pending in another comes
// out a full member (promotion happens, demotion is ignored). Afterwards
// the sources' aliases are repointed at the target and the sources are
// deleted.
//
// The whole merge runs in one transaction where the server supports
// them, so a failure partway never leaves a source half-drained.
func (s *Service) MergeGroups(ctx context.Context, targetID primitive.ObjectID, sourceIDs []primitive.ObjectID) error {
	if len(sourceIDs) == 0 {
		return nil
	}

	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		target, err := s.groups.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		rows, err := s.memberships.ListByGroups(ctx, sourceIDs)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := s.AddMember(ctx, target, row.UserID, row.Status); err != nil {
				return err
			}
		}

		for _, srcID := range sourceIDs {
			if _, err := s.groups.Aliases().Repoint(ctx, srcID, targetID); err != nil {
				return err
			}
			if _, err := s.memberships.DeleteByGroup(ctx, srcID); err != nil {
				return err
			}
			if _, err := s.groups.Delete(ctx, srcID); err != nil {
				return err
			}
		}

		s.log.Info("merged groups",
			zap.String("target_id", targetID.Hex()),
			zap.Int("sources", len(sourceIDs)),
			zap.Int("memberships_replayed", len(rows)))
		return nil
	})
}

// AddSkill links userID to the skill. Skills are binary, so there is
// nothing to promote and no triggers to fire.
func (s *Service) AddSkill(ctx context.Context, skillID, userID primitive.ObjectID) error {
	_, err := s.skillMembers.Add(ctx, skillID, userID)
	return err
}

// RemoveSkill unlinks userID from the skill. Idempotent.
func (s *Service) RemoveSkill(ctx context.Context, skillID, userID primitive.ObjectID) error {
	return s.skillMembers.Remove(ctx, skillID, userID)
}

// HasSkill reports whether userID is tagged with the skill. Skills have
// no pending state, so there is no pending counterpart.
func (s *Service) HasSkill(ctx context.Context, skillID, userID primitive.ObjectID) (bool, error) {
	return s.skillMembers.Has(ctx, skillID, userID)
}

// MergeSkills is the base merge: move every member of each source skill
// to the target, repoint aliases, delete the sources. With no statuses
// there is nothing to reconcile.
func (s *Service) MergeSkills(ctx context.Context, targetID primitive.ObjectID, sourceIDs []primitive.ObjectID) error {
	if len(sourceIDs) == 0 {
		return nil
	}

	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		rows, err := s.skillMembers.ListBySkills(ctx, sourceIDs)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := s.skillMembers.Add(ctx, targetID, row.UserID); err != nil {
				return err
			}
		}

		for _, srcID := range sourceIDs {
			if _, err := s.skills.Aliases().Repoint(ctx, srcID, targetID); err != nil {
				return err
			}
			if _, err := s.skillMembers.DeleteBySkill(ctx, srcID); err != nil {
				return err
			}
			if _, err := s.skills.Delete(ctx, srcID); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteProfile removes a profile and everything that references it:
// membership rows, skill links, and curator back-references (curated
// groups survive with no curator).
func (s *Service) DeleteProfile(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.groups.ClearCurator(ctx, userID); err != nil {
		return err
	}
	if _, err := s.memberships.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.skillMembers.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	_, err := s.profiles.Delete(ctx, userID)
	return err
}
