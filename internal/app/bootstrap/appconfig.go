// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, request limits); AppConfig is everything specific to
// CommonsHub. Fields are loaded in LoadConfig from environment
// variables, config files, or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Marketing list sync. Membership changes on functional-area groups
	// post profile IDs here; blank disables the sync entirely.
	BasketURL string

	// TaskTimeout bounds each fire-and-forget trigger job.
	TaskTimeout time.Duration

	// Curator reminder worker for by-request groups with unreviewed
	// join requests.
	ReminderEnabled  bool
	ReminderInterval time.Duration

	// Per-client API rate limit. Zero disables limiting.
	RateLimit  int
	RateWindow time.Duration
}
