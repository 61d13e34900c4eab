// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/real-ds/VITConnectDemo/internal/app/store/oauthstate"
	"github.com/real-ds/VITConnectDemo/internal/app/system/tasks"
	"github.com/real-ds/VITConnectDemo/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// taskRunner is started here and stopped in Shutdown.
var taskRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to warm caches, start background jobs, or perform any app-wide setup
// that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if applied := timeouts.ConfigureFromEnv(); applied > 0 {
		logger.Info("applied timeout overrides from environment", zap.Int("count", applied))
	}

	taskRunner = tasks.NewRunner(logger,
		tasks.OAuthStateCleanupJob(oauthstate.New(deps.MongoDatabase), logger),
	)
	taskRunner.Start()

	return nil
}
