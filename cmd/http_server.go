package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/restaurant-management/internal"
	"github.com/frahmantamala/restaurant-management/internal/auth"
	authPostgres "github.com/frahmantamala/restaurant-management/internal/auth/postgres"
	"github.com/frahmantamala/restaurant-management/internal/company"
	companyPostgres "github.com/frahmantamala/restaurant-management/internal/company/postgres"
	"github.com/frahmantamala/restaurant-management/internal/core/events"
	"github.com/frahmantamala/restaurant-management/internal/rolepermission"
	rolepermissionPostgres "github.com/frahmantamala/restaurant-management/internal/rolepermission/postgres"
	"github.com/frahmantamala/restaurant-management/internal/transport"
	"github.com/frahmantamala/restaurant-management/internal/transport/rest"
	"github.com/frahmantamala/restaurant-management/internal/transport/swagger"
	"github.com/frahmantamala/restaurant-management/internal/user"
	userPostgres "github.com/frahmantamala/restaurant-management/internal/user/postgres"
	"github.com/frahmantamala/restaurant-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if specPath := deps.Config.Server.OpenAPISpecPath; specPath != "" {
		if err := swagger.ValidateSpec(context.Background(), specPath); err != nil {
			deps.Logger.Warn("OpenAPI spec validation failed, swagger UI may be broken", "error", err)
		}
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	eventBus := events.NewEventBus(deps.Logger)
	RegisterAuditSubscribers(eventBus, deps.Logger)

	baseHandler := transport.NewBaseHandler(deps.Logger)

	// auth
	tokenGen := &auth.JWTTokenGenerator{
		AccessTokenSecret:  []byte(deps.Config.Security.AccessTokenSecret),
		RefreshTokenSecret: []byte(deps.Config.Security.RefreshTokenSecret),
		AccessTokenTTL:     deps.Config.Security.AccessTokenDuration,
		RefreshTokenTTL:    deps.Config.Security.RefreshTokenDuration,
	}
	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen)
	authHandler := auth.NewHandler(authService)

	// role permissions
	rolePermRepo := rolepermissionPostgres.NewRolePermissionRepository(deps.GormDB)
	rolePermService := rolepermission.NewService(rolePermRepo, eventBus, deps.Logger)
	rolePermHandler := rolepermission.NewHandler(baseHandler, rolePermService)

	featureAccess := auth.NewFeatureAccess(rolePermService, deps.Logger)

	// company settings
	companyRepo := companyPostgres.NewCompanyRepository(deps.GormDB)
	companyService := company.NewService(companyRepo, eventBus, deps.Logger)
	companyHandler := company.NewHandler(baseHandler, companyService)

	// users
	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, rolePermService)
	userHandler := user.NewHandler(userService)

	rest.RegisterAllRoutes(deps.Router, rest.RouterDeps{
		DB:                    deps.DB.DB,
		AuthHandler:           authHandler,
		FeatureAccess:         featureAccess,
		UserHandler:           userHandler,
		CompanyHandler:        companyHandler,
		RolePermissionHandler: rolePermHandler,
		Logger:                deps.Logger,
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection pool
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
