// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/brightland/schoolsite/internal/app/resources"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having live
// database connections and fully loaded configuration. Unlike ConnectDB and
// EnsureSchema which focus on infrastructure, Startup is for application-level
// initialization.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting. Returning nil signals that initialization succeeded.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// viewdata renders the school header/footer on every page; give it
	// the storage provider for logo URLs and the database for settings.
	viewdata.Init(deps.FileStorage, deps.MongoDatabase)

	return nil
}
