// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/commonshub/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes every collection relies on,
// including the unique indexes that back name and slug uniqueness.
// Idempotent: safe to run on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.CommonsHubMongoDatabase)
}
