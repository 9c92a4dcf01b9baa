// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/web-rebel/devlink/internal/app/features/auth"
	healthfeature "github.com/web-rebel/devlink/internal/app/features/health"
	postsfeature "github.com/web-rebel/devlink/internal/app/features/posts"
	profilesfeature "github.com/web-rebel/devlink/internal/app/features/profiles"
	usersfeature "github.com/web-rebel/devlink/internal/app/features/users"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. DevLink builds the token verifier from
// app config, applies it globally so every handler can read the caller via
// auth.CurrentUser, and mounts the JSON API feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokens(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token service init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	github := profilesfeature.NewGithubClient(appCfg.GithubAPIURL, appCfg.GithubToken)

	// One limiter shared by registration and login, so a host hammering both
	// endpoints burns a single IP window.
	limiter := ratelimit.NewCredentialLimiter()

	r := chi.NewRouter()

	// Global auth middleware: loads the token user into context when a valid
	// bearer token is present. Routes that require a caller add
	// auth.RequireSignedIn on top of this.
	r.Use(tokens.LoadTokenUser)

	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(db, tokens, limiter, appCfg.BcryptCost, appCfg.GravatarBaseURL, logger)))
		r.Mount("/auth", authfeature.Routes(authfeature.NewHandler(db, tokens, limiter, logger)))
		r.Mount("/profile", profilesfeature.Routes(profilesfeature.NewHandler(db, github, logger)))
		r.Mount("/posts", postsfeature.Routes(postsfeature.NewHandler(db, logger)))
	})

	return r, nil
}
