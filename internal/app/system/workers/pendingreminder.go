// internal/app/system/workers/pendingreminder.go
package workers

import (
	"context"
	"sync"
	"time"

	groupstore "github.com/dalemusser/commonshub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/commonshub/internal/app/store/memberships"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PendingNotifier delivers the curator reminder. The log-backed default
// lives in the tasks package; tests substitute a recorder.
type PendingNotifier interface {
	PendingRequestsReminder(groupID primitive.ObjectID, curatorID primitive.ObjectID, pending int64)
}

// PendingReminder is a background worker that periodically reminds
// curators of by-request groups about unreviewed join requests.
//
// Each group carries a high-water mark of the pending count it was last
// reminded at. A reminder fires only when the current pending count
// exceeds that mark, so a curator who ignores the queue is not nagged
// every sweep; the mark advances with each reminder sent.
type PendingReminder struct {
	groups      *groupstore.Store
	memberships *membershipstore.Store
	notifier    PendingNotifier
	log         *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewPendingReminder creates the worker. interval is how often to sweep
// curated groups (daily in production, short in tests).
func NewPendingReminder(groups *groupstore.Store, memberships *membershipstore.Store, notifier PendingNotifier, logger *zap.Logger, interval time.Duration) *PendingReminder {
	return &PendingReminder{
		groups:      groups,
		memberships: memberships,
		notifier:    notifier,
		log:         logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *PendingReminder) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("pending reminder worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *PendingReminder) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("pending reminder worker stopped")
}

func (w *PendingReminder) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one reminder pass. Exported so deployments that prefer an
// external scheduler can invoke it directly.
func (w *PendingReminder) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	curated, err := w.groups.Curated(ctx)
	if err != nil {
		w.log.Error("pending reminder: listing curated groups failed", zap.Error(err))
		return
	}

	reminded := 0
	for _, g := range curated {
		if g.Accepting() != models.AcceptingByRequest || g.CuratorID == nil {
			continue
		}

		pending, err := w.memberships.CountByGroup(ctx, g.ID, models.StatusPending)
		if err != nil {
			w.log.Error("pending reminder: counting requests failed",
				zap.String("group_id", g.ID.Hex()), zap.Error(err))
			continue
		}
		if pending <= g.MaxReminder {
			continue
		}

		w.notifier.PendingRequestsReminder(g.ID, *g.CuratorID, pending)
		if err := w.groups.SetMaxReminder(ctx, g.ID, pending); err != nil {
			w.log.Error("pending reminder: advancing watermark failed",
				zap.String("group_id", g.ID.Hex()), zap.Error(err))
			continue
		}
		reminded++
	}

	if reminded > 0 {
		w.log.Info("pending reminders sent", zap.Int("groups", reminded))
	}
}
