// filepath: internal/cli/server.go
package cli

import (
	"blog/internal/api"
	"blog/internal/api/handlers"
	"blog/internal/audit"
	"blog/internal/config"
	"blog/internal/housekeeping"
	"blog/internal/initconfig"
	"blog/internal/logging"
	"blog/internal/repository"
	"blog/internal/services"
	"blog/internal/services/auth"
	"blog/internal/session"
	"blog/internal/storage"
	"blog/internal/web"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// resolveSessionSecret picks the cookie signing secret. A secret from the
// environment or a flag wins, then the one stored in the config file. Without
// either a new secret is generated and written back to the config file.
func resolveSessionSecret(c *config.Config, path string) error {
	if c.SessionSecret != "" {
		return nil
	}
	if c.Session.Secret != "" {
		logging.Log.Infof("Using session secret loaded from %s.", path)
		c.SessionSecret = c.Session.Secret
		return nil
	}

	logging.Log.Info("Generating new random session secret...")
	secret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}
	c.Session.Secret = secret
	c.SessionSecret = secret
	if err := config.SaveConfig(path, c); err != nil {
		logging.Log.Warnf("Failed to save new session secret to %s: %v", path, err)
	} else {
		logging.Log.Infof("New session secret saved to %s.", path)
	}
	return nil
}

// openRepository connects to the database and makes sure the schema is current.
func openRepository(c *config.Config) (*repository.Repository, error) {
	repo, err := repository.NewRepository(c)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		repo.Close()
		return nil, err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		repo.Close()
		return nil, err
	}
	return repo, nil
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer(initConfig string) error {
	if err := resolveSessionSecret(cfg, cfgFile); err != nil {
		return err
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	startCtx := context.Background()

	uploads, err := storage.New(startCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	store, err := session.New(cfg, repo, time.Now)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Service Initialization
	infoService := services.NewInfoService(Version, StartTime, cfg.Session.Backend, cfg.Storage.Backend)
	userService := services.NewUserService(repo)
	postService := services.NewPostService(repo, uploads, cfg.MaxUploadSizeBytes)
	housekeepingService := services.NewHousekeepingService(housekeeping.Dependencies{
		Sessions: store,
		Posts:    repo,
		Uploads:  uploads,
		Clock:    time.Now,
	})

	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	sessionManager := auth.NewSessionManager(
		userService,
		store,
		auth.NewCookieCodec(cfg.SessionSecret, time.Now),
		cfg.RememberDuration,
		cfg.Session.CookieSecure,
		loggerAuditor,
	)
	defer sessionManager.Close()

	if err := userService.InitializeUsers(startCtx, cfg); err != nil {
		return fmt.Errorf("failed to handle initial users: %w", err)
	}

	if initConfig != "" {
		logging.Log.Infof("Found init_config, running initialization from: %s", initConfig)
		initconfig.Run(startCtx, userService, initConfig)
	}

	h := handlers.NewHandlers(
		infoService,
		userService,
		postService,
		housekeepingService,
		sessionManager,
		loggerAuditor,
		web.MustRenderer(),
		cfg,
	)

	r := api.SetupRouter(h, auth.NewMiddleware(sessionManager, h.RenderError))

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server starting on %s (sessions: %s, storage: %s, max upload: %s)",
			serverAddr, cfg.Session.Backend, cfg.Storage.Backend, cfg.Server.MaxUploadSize)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
