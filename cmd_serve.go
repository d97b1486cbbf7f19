package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blogem/proof-calc/authenticator"
	"github.com/blogem/proof-calc/config"
	"github.com/blogem/proof-calc/controllers"
	"github.com/blogem/proof-calc/engine"
	authmiddleware "github.com/blogem/proof-calc/middleware"
	"github.com/blogem/proof-calc/services"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator JSON API",
	Long: `Starts the HTTP API. The proof table is loaded in the background; until it
is ready /ready answers 503 and calculations fail with table_not_ready.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.ProofTableSource == "" {
		return errors.New("PROOF_TABLE_SOURCE is required to serve")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	eng := engine.New(nil)
	go func() {
		table, err := loadTable(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to load proof table; calculations stay unavailable", zap.Error(err))
			return
		}
		eng.SetTable(table)
	}()

	var auth *authenticator.OIDCProvider
	if cfg.Auth.Enabled() {
		auth, err = authenticator.NewOIDCProvider(ctx, authenticator.Config{
			Domain:       cfg.Auth.Domain,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			CallbackURL:  cfg.Auth.CallbackURL,
			Audience:     cfg.Auth.Audience,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize OIDC provider: %w", err)
		}
	} else {
		logger.Warn("no identity provider configured; calculations are recorded anonymously")
	}

	srvs := services.NewServices(repos, eng, logger)
	ctrl := controllers.NewControllers(srvs, eng, cfg.Auth.ReturnURL, logger)

	r, err := setupRouter(cfg, ctrl, auth, logger)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("proof-calc starting",
			zap.String("port", cfg.Port),
			zap.String("log_store", cfg.LogStore),
			zap.Bool("auth_required", cfg.Auth.Required),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// setupRouter configures all routes. auth may be nil when no identity provider
// is configured.
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, auth *authenticator.OIDCProvider, logger *zap.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(authmiddleware.CORS(authmiddleware.DefaultCORSConfig(cfg.AllowedOrigins)))
	}

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "proof_calc_session",
		Secure:         cfg.UseHTTPS, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     3600,         // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// a nil *OIDCProvider must not become a non-nil interface
	var verifier authenticator.BearerVerifier
	if auth != nil {
		verifier = auth
	}
	r.Use(authmiddleware.Operator(verifier, logger))
	r.Use(authmiddleware.AuditLogger(logger))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", ctrl.Auth.WhoAmI)
	r.Get("/health", ctrl.Health.Health)
	r.Get("/ready", ctrl.Health.Ready)
	if auth != nil {
		r.Get("/login", ctrl.Auth.Login(auth))
		r.Get("/callback", ctrl.Auth.Callback(auth))
		r.Get("/logout", ctrl.Auth.Logout)
	}

	// CALCULATOR ROUTES (authentication required when AUTH_REQUIRED=true)
	r.Group(func(r chi.Router) {
		if cfg.Auth.Required {
			r.Use(authmiddleware.RequireOperator)
		}

		r.Route("/calc", func(r chi.Router) {
			r.Post("/top", ctrl.Calc.Top)
			r.Post("/bottom", ctrl.Calc.Bottom)
			r.Post("/variable", ctrl.Calc.Variable)
		})

		r.Get("/log", ctrl.Log.List)
		r.Delete("/log", ctrl.Log.Clear)
	})

	return r, nil
}
