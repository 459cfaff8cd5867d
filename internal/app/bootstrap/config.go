// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CommonsHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, basket_url, etc.
//   - Environment variables: COMMONSHUB_MONGO_URI, COMMONSHUB_BASKET_URL, etc.
//   - Command-line flags: --mongo_uri, --basket_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "commonshub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Marketing list sync
	{Name: "basket_url", Default: "", Desc: "Marketing sync endpoint (blank disables syncing)"},

	// Trigger dispatch
	{Name: "task_timeout", Default: "30s", Desc: "Deadline for each fire-and-forget trigger job"},

	// Curator reminders
	{Name: "reminder_enabled", Default: true, Desc: "Run the pending-request reminder worker"},
	{Name: "reminder_interval", Default: "24h", Desc: "How often to sweep curated groups for unreviewed requests"},

	// API rate limiting
	{Name: "rate_limit", Default: 300, Desc: "Max API requests per client per window (0 disables)"},
	{Name: "rate_window", Default: "1m", Desc: "Rate limit window duration"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COMMONSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		BasketURL: appValues.String("basket_url"),

		TaskTimeout: appValues.Duration("task_timeout", 30*time.Second),

		ReminderEnabled:  appValues.Bool("reminder_enabled"),
		ReminderInterval: appValues.Duration("reminder_interval", 24*time.Hour),

		RateLimit:  appValues.Int("rate_limit"),
		RateWindow: appValues.Duration("rate_window", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// CommonsHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.ReminderEnabled && appCfg.ReminderInterval <= 0 {
		return fmt.Errorf("reminder_interval must be positive when the reminder worker is enabled")
	}

	return nil
}
