// Command identity runs the identity service: user accounts, login and
// bearer-token authentication over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/identity/api"
	"github.com/skillsenselab/identity/auth"
	"github.com/skillsenselab/identity/auth/jwt"
	"github.com/skillsenselab/identity/auth/password"
	"github.com/skillsenselab/identity/config"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/observability"
	"github.com/skillsenselab/identity/server"
	"github.com/skillsenselab/identity/server/endpoint"
	"github.com/skillsenselab/identity/server/middleware"
	"github.com/skillsenselab/identity/store"
	"github.com/skillsenselab/identity/user"
	"github.com/skillsenselab/identity/version"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("service failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Version == "" || cfg.Version == "dev" {
		cfg.Version = version.Get().String()
	}

	logger.Init(cfg.Logger)
	log := logger.GetGlobalLogger()
	log.Info("starting service", map[string]interface{}{
		"service": cfg.Service,
		"version": cfg.Version,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry.
	var metrics *observability.Metrics
	if cfg.Telemetry.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Service, cfg.Version, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()

		mp, err := observability.InitMeter(ctx, cfg.Service, cfg.Version, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err = observability.NewMetrics(observability.Meter(cfg.Service))
		if err != nil {
			return err
		}
	}

	// Storage.
	st, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.EnsureRoles(ctx, auth.RoleUser, auth.RoleAdmin); err != nil {
		return err
	}

	// Domain services.
	tokens, err := jwt.NewService(&cfg.Auth.JWT)
	if err != nil {
		return err
	}
	users := user.NewService(st, password.NewHasher(cfg.Auth.Password), log)

	// HTTP surface. Order matters: recovery first, then request id, CORS
	// and logging, then the authentication filter and finally the policy.
	srv := server.New(cfg.Server, log)
	srv.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.Server.CORS),
		middleware.RequestLogger(),
		middleware.Telemetry(metrics),
		middleware.Authenticate(middleware.AuthnConfig{
			Tokens:      tokens,
			RefreshPath: api.RefreshPath,
			SkipPaths:   []string{api.LoginPath},
			Metrics:     metrics,
		}),
		middleware.Authorize(api.Policy()),
	)

	engine := srv.Engine()
	engine.GET("/health", endpoint.Health(cfg.Service, cfg.Version, st))
	engine.GET("/info", endpoint.Info(cfg.Service, cfg.Version))
	api.Register(engine,
		api.NewAuthHandler(users, tokens, metrics, log),
		api.NewUsersHandler(users, log),
	)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	waitForSignal(ctx, log)
	return srv.Stop(context.Background())
}

// waitForSignal blocks until SIGINT/SIGTERM or context cancellation.
func waitForSignal(ctx context.Context, log *logger.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
	case <-ctx.Done():
		log.Info("context canceled, shutting down")
	}
}
