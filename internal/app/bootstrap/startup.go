// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	groupstore "github.com/dalemusser/commonshub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/commonshub/internal/app/store/memberships"
	"github.com/dalemusser/commonshub/internal/app/system/tasks"
	"github.com/dalemusser/commonshub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// reminderWorker is started in Startup and stopped in Shutdown.
var reminderWorker *workers.PendingReminder

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// CommonsHub uses it to launch the curator reminder worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if !appCfg.ReminderEnabled {
		logger.Info("pending reminder worker disabled")
		return nil
	}

	db := deps.CommonsHubMongoDatabase
	dispatcher := tasks.NewDispatcher(logger, appCfg.TaskTimeout)
	notifier := tasks.NewLogNotifier(dispatcher, logger)

	reminderWorker = workers.NewPendingReminder(
		groupstore.New(db),
		membershipstore.New(db),
		notifier,
		logger,
		appCfg.ReminderInterval,
	)
	reminderWorker.Start()
	return nil
}
