// File: smarttravel/main.go
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smarttravel/config"
	"smarttravel/handlers"
	"smarttravel/middleware"
	"smarttravel/routes"
	"smarttravel/services/backend"
	"smarttravel/services/explore"
	"smarttravel/services/gateway"
	"smarttravel/services/geocode"
	"smarttravel/services/onboarding"
	"smarttravel/services/session"
	"smarttravel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Backend API client.
	backendClient := backend.NewHTTPClient(config.AppConfig.BackendURL, logger)

	// Credential store selection.
	var sqliteDB *sql.DB
	switch config.AppConfig.CredStore {
	case "redis":
		utils.InitCredCache()
	case "sqlite":
		var err error
		sqliteDB, err = session.OpenSQLite(config.AppConfig.SQLitePath)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open credential store: %v", err)
		}
	case "memory":
	default:
		logger.Sugar().Fatalf("main: unknown CRED_STORE %q", config.AppConfig.CredStore)
	}

	newCredStore := func(scope string) session.CredentialStore {
		switch config.AppConfig.CredStore {
		case "redis":
			return session.NewRedisStore(utils.GetCredCacheClient(), scope, logger)
		case "sqlite":
			return session.NewSQLiteStore(sqliteDB, scope)
		default:
			return session.NewMemoryStore()
		}
	}

	// One courtesy limiter shared by every autocomplete client keeps
	// the public geocoder traffic bounded gateway-wide.
	geocodeLimiter := rate.NewLimiter(rate.Every(time.Second), 2)

	factory := func(ctx context.Context, id string) *gateway.Session {
		auth := session.NewStore(backendClient, newCredStore(id), logger)
		toasts := &gateway.ToastQueue{}
		controller := explore.NewController(
			backendClient, auth, toasts, logger,
			config.AppConfig.SearchRadiusKm, config.AppConfig.Language,
		)
		mapState := gateway.NewMapState()
		autocomplete := geocode.NewAutocomplete(geocode.Config{
			BaseURL:   config.AppConfig.NominatimURL,
			UserAgent: config.AppConfig.NominatimUserAgent,
			Language:  config.AppConfig.Language,
			Limit:     config.AppConfig.SuggestionLimit,
			Debounce:  time.Duration(config.AppConfig.DebounceMs) * time.Millisecond,
		}, geocodeLimiter, logger)

		return &gateway.Session{
			ID:           id,
			Auth:         auth,
			Wizard:       onboarding.NewWizard(backendClient, auth, logger),
			Explore:      controller,
			Map:          mapState,
			MapView:      explore.NewMapView(mapState, controller),
			Autocomplete: autocomplete,
			Toasts:       toasts,
		}
	}

	sessions := gateway.NewManager(factory,
		time.Duration(config.AppConfig.SessionIdleMin)*time.Minute, logger)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()
	sessions.StartJanitor(rootCtx)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.GatewaySessionMiddleware(sessions))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Session endpoints.
		LoginHandler:    handlers.LoginHandler,
		RegisterHandler: handlers.RegisterHandler,
		LogoutHandler:   handlers.LogoutHandler,
		MeHandler:       handlers.MeHandler,
		ToastsHandler:   handlers.ToastsHandler,

		// Profile endpoints.
		UpdateProfileHandler: handlers.UpdateProfileHandler(backendClient),

		// Onboarding endpoints.
		OnboardingStateHandler:    handlers.OnboardingStateHandler,
		OnboardingNextHandler:     handlers.OnboardingNextHandler,
		OnboardingBackHandler:     handlers.OnboardingBackHandler,
		OnboardingFieldHandler:    handlers.OnboardingFieldHandler,
		OnboardingToggleHandler:   handlers.OnboardingToggleHandler,
		OnboardingCompleteHandler: handlers.OnboardingCompleteHandler,
		PreferenceCatalogHandler:  handlers.PreferenceCatalogHandler(backendClient),

		// Explore endpoints.
		ExploreSearchHandler:       handlers.ExploreSearchHandler,
		ExploreRetryHandler:        handlers.ExploreRetryHandler,
		ExploreSelectHandler:       handlers.ExploreSelectHandler,
		ExploreStateHandler:        handlers.ExploreStateHandler,
		AutocompleteInputHandler:   handlers.AutocompleteInputHandler,
		AutocompleteClearHandler:   handlers.AutocompleteClearHandler,
		AutocompleteResultsHandler: handlers.AutocompleteResultsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	rootCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if sqliteDB != nil {
		if err := sqliteDB.Close(); err != nil {
			logger.Warn("main: failed to close credential store", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
