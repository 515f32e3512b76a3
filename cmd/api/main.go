package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagaswara/porto/internal/background"
	"github.com/bagaswara/porto/internal/config"
	"github.com/bagaswara/porto/internal/database"
	"github.com/bagaswara/porto/internal/gate"
	"github.com/bagaswara/porto/internal/handlers"
	"github.com/bagaswara/porto/internal/identity"
	middlewareCustom "github.com/bagaswara/porto/internal/middleware"
	"github.com/bagaswara/porto/internal/repositories"
	"github.com/bagaswara/porto/internal/routes"
	"github.com/bagaswara/porto/internal/services"
	pkglogger "github.com/bagaswara/porto/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// sessionVerifier adapts the identity service to the gate's verifier
// interface.
type sessionVerifier struct {
	identity identity.Service
}

func (v sessionVerifier) Verify(ctx context.Context, token string) (*identity.User, error) {
	return v.identity.GetSession(ctx, token)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	projectRepo := repositories.NewProjectRepository(db)
	experienceRepo := repositories.NewExperienceRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	certificateRepo := repositories.NewCertificateRepository(db)

	// Identity provider: hosted API when a URL is configured, otherwise the
	// local single-account provider.
	identityService, localProvider, err := buildIdentityService(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize identity provider", slog.Any("error", err))
		os.Exit(1)
	}

	// Session gate: login rate limiting plus session checks for the admin
	// subtree.
	attemptStore := gate.NewAttemptStore(cfg.Gate.LoginWindow)
	limiter := gate.NewLimiter(attemptStore, gate.LimiterConfig{
		MaxAttempts: cfg.Gate.LoginMaxAttempts,
		Window:      cfg.Gate.LoginWindow,
	})
	allowlist := gate.ParseAllowlist(cfg.Gate.IPAllowlist)
	gateController := gate.NewController(
		gate.ControllerConfig{
			AdminRoutePrefix: cfg.Gate.AdminRoutePrefix,
			VerifyTimeout:    cfg.Gate.VerifyTimeout,
		},
		limiter,
		allowlist,
		sessionVerifier{identity: identityService},
		logger,
	)

	// CSRF token manager and timing delay for the login handler
	csrfManager := identity.NewCSRFTokenManager()
	timingDelay := identity.NewTimingDelay(identity.TimingConfig{
		BaseDelayMs:   cfg.Identity.TimingBaseDelayMs,
		RandomDelayMs: cfg.Identity.TimingJitterMs,
	})

	// Background sweeper for the in-memory stores
	sweepTargets := map[string]background.Sweepable{
		"login_attempts": attemptStore,
		"csrf_tokens":    csrfManager,
	}
	if localProvider != nil {
		sweepTargets["sessions"] = localProvider
	}
	sweeper := background.NewSweeper(sweepTargets, logger, cfg.Gate.SweepInterval)

	// Email service is optional; without AWS config the contact form
	// responds 503.
	var emailService services.EmailService
	if cfg.Email.AWSRegion != "" && cfg.Email.FromAddress != "" && cfg.Email.ToAddress != "" {
		sesService, err := services.NewAWSSESEmailService(
			cfg.Email.AWSRegion,
			cfg.Email.FromAddress,
			cfg.Email.ToAddress,
			logger,
		)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		emailService = sesService
	} else {
		logger.Warn("email not configured, contact form disabled")
	}

	mediaService := services.NewMediaService(
		cfg.Media.ImageKitPrivateKey,
		cfg.Media.ImageKitPublicKey,
		cfg.Media.URLEndpoint,
		logger,
	)

	auditLogger := pkglogger.NewAuditLogger(logger)

	cookieConfig := identity.CookieConfig{
		Domain:   cfg.Gate.CookieDomain,
		Secure:   cfg.Gate.CookieSecure,
		SameSite: cfg.Gate.CookieSameSite,
	}

	// Initialize handlers
	h := routes.Handlers{
		Auth: handlers.NewAuthHandler(
			identityService,
			csrfManager,
			timingDelay,
			cookieConfig,
			cfg.Identity.SessionTTL,
			cfg.Gate.AdminRoutePrefix,
			auditLogger,
		),
		Contact:      handlers.NewContactHandler(emailService, logger),
		Projects:     handlers.NewProjectsHandler(projectRepo, mediaService, logger),
		Experience:   handlers.NewExperienceHandler(experienceRepo, logger),
		Skills:       handlers.NewSkillsHandler(skillRepo, logger),
		Certificates: handlers.NewCertificatesHandler(certificateRepo, logger),
		Dashboard:    handlers.NewDashboardHandler(projectRepo, experienceRepo, skillRepo, certificateRepo, logger),
		Media:        handlers.NewMediaHandler(mediaService, logger),
	}

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(gateController.Middleware)

	// Register routes
	routes.RegisterRoutes(router, h, cfg.Gate.AdminRoutePrefix, middlewareCustom.CSRFProtection(csrfManager, logger))

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start background sweeper
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go sweeper.Start(sweepCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	sweepCancel()
	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// buildIdentityService selects the identity provider from configuration.
// The local provider is also returned on its own so its session store can
// be registered with the sweeper.
func buildIdentityService(cfg *config.Config, logger *slog.Logger) (identity.Service, *identity.LocalProvider, error) {
	if cfg.Identity.URL != "" {
		logger.Info("using hosted identity provider", slog.String("url", cfg.Identity.URL))
		client := identity.NewClient(identity.ClientConfig{
			BaseURL: cfg.Identity.URL,
			APIKey:  cfg.Identity.APIKey,
			Timeout: cfg.Gate.VerifyTimeout,
		})
		return client, nil, nil
	}

	logger.Info("using local identity provider",
		slog.String("admin_email", pkglogger.SanitizedEmail(cfg.Identity.AdminEmail)))
	provider, err := identity.NewLocalProvider(identity.LocalConfig{
		AdminEmail:   cfg.Identity.AdminEmail,
		PasswordHash: cfg.Identity.AdminPasswordHash,
		SessionTTL:   cfg.Identity.SessionTTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return provider, provider, nil
}
