// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	authgooglefeature "github.com/real-ds/VITConnectDemo/internal/app/features/authgoogle"
	communitiesfeature "github.com/real-ds/VITConnectDemo/internal/app/features/communities"
	feedfeature "github.com/real-ds/VITConnectDemo/internal/app/features/feed"
	healthfeature "github.com/real-ds/VITConnectDemo/internal/app/features/health"
	loginfeature "github.com/real-ds/VITConnectDemo/internal/app/features/login"
	postsfeature "github.com/real-ds/VITConnectDemo/internal/app/features/posts"
	profilefeature "github.com/real-ds/VITConnectDemo/internal/app/features/profile"
	"github.com/real-ds/VITConnectDemo/internal/app/social"
	communitystore "github.com/real-ds/VITConnectDemo/internal/app/store/communities"
	"github.com/real-ds/VITConnectDemo/internal/app/store/oauthstate"
	poststore "github.com/real-ds/VITConnectDemo/internal/app/store/posts"
	feedquery "github.com/real-ds/VITConnectDemo/internal/app/store/queries/feed"
	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/app/system/apierr"
	"github.com/real-ds/VITConnectDemo/internal/app/system/auth"
	"github.com/real-ds/VITConnectDemo/internal/app/system/uploads"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// VITConnect builds the stores, the feed assembler, and the interaction
// service, applies session middleware, and mounts the JSON API routers:
// auth, feed, posts, communities, and user profiles.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Media uploads land on local disk and are served back under the
	// configured URL prefix.
	blobStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("local storage init failed", zap.Error(err))
		return nil, err
	}
	uploader := uploads.New(blobStore, appCfg.StorageLocalURL)

	// Stores over the shared database handle.
	users := userstore.New(deps.MongoDatabase)
	communities := communitystore.New(deps.MongoDatabase)
	posts := poststore.New(deps.MongoDatabase)
	states := oauthstate.New(deps.MongoDatabase)

	// The interaction service owns the authenticated write paths; the
	// assembler joins posts with their authors and communities for reads.
	svc := social.New(users, communities, posts, uploader, logger)
	assembler := feedquery.NewAssembler(feedquery.NewStoreResolver(users, communities), logger)

	// Create error logger for handlers.
	errLog := apierr.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded media (post attachments, covers, profile pictures) with
	// pre-compressed file support (gzip/brotli)
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	loginfeature.MountRoutes(r, loginHandler)

	googleHandler := authgooglefeature.NewHandler(users, sessionMgr, states,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	authgooglefeature.MountRoutes(r, googleHandler)

	// Feed and posts
	feedHandler := feedfeature.NewHandler(posts, assembler, errLog, logger)
	feedfeature.MountRoutes(r, feedHandler)

	postsHandler := postsfeature.NewHandler(posts, svc, assembler, errLog, logger)
	postsfeature.MountRoutes(r, postsHandler)

	// Communities
	communitiesHandler := communitiesfeature.NewHandler(communities, posts, svc, assembler, errLog, logger)
	communitiesfeature.MountRoutes(r, communitiesHandler)

	// User profiles
	profileHandler := profilefeature.NewHandler(users, posts, svc, assembler, errLog, logger)
	profilefeature.MountRoutes(r, profileHandler)

	return r, nil
}
