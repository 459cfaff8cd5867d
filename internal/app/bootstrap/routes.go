// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	groupsfeature "github.com/dalemusser/commonshub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/commonshub/internal/app/features/health"
	profilesfeature "github.com/dalemusser/commonshub/internal/app/features/profiles"
	skillsfeature "github.com/dalemusser/commonshub/internal/app/features/skills"
	"github.com/dalemusser/commonshub/internal/app/membership"
	"github.com/dalemusser/commonshub/internal/app/system/ratelimit"
	"github.com/dalemusser/commonshub/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. CommonsHub builds the membership
// service with its trigger backends and mounts the JSON feature routers:
// health, groups, skills, and profiles.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CommonsHubMongoDatabase

	dispatcher := tasks.NewDispatcher(logger, appCfg.TaskTimeout)
	notifier := tasks.NewLogNotifier(dispatcher, logger)
	syncer := tasks.NewBasketSyncer(dispatcher, appCfg.BasketURL, logger)

	svc := membership.NewService(db, notifier, syncer, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators,
	// outside the rate limit so probes never get throttled.
	healthHandler := healthfeature.NewHandler(deps.CommonsHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Group(func(api chi.Router) {
		if appCfg.RateLimit > 0 {
			limiter := ratelimit.New(appCfg.RateLimit, appCfg.RateWindow)
			api.Use(limiter.Middleware)
		}

		groupsHandler := groupsfeature.NewHandler(svc, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsHandler))

		skillsHandler := skillsfeature.NewHandler(svc, logger)
		api.Mount("/skills", skillsfeature.Routes(skillsHandler))

		profilesHandler := profilesfeature.NewHandler(svc, logger)
		api.Mount("/profiles", profilesfeature.Routes(profilesHandler))
	})

	return r, nil
}
