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

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/auth"
	"github.com/teamtracker/teamtracker-api/internal/employee"
	employeeRepo "github.com/teamtracker/teamtracker-api/internal/employee/postgres"
	"github.com/teamtracker/teamtracker-api/internal/extraday"
	extradayRepo "github.com/teamtracker/teamtracker-api/internal/extraday/postgres"
	"github.com/teamtracker/teamtracker-api/internal/identity"
	"github.com/teamtracker/teamtracker-api/internal/leave"
	leaveRepo "github.com/teamtracker/teamtracker-api/internal/leave/postgres"
	"github.com/teamtracker/teamtracker-api/internal/note"
	noteRepo "github.com/teamtracker/teamtracker-api/internal/note/postgres"
	"github.com/teamtracker/teamtracker-api/internal/registry"
	registryRepo "github.com/teamtracker/teamtracker-api/internal/registry/postgres"
	"github.com/teamtracker/teamtracker-api/internal/transport"
	"github.com/teamtracker/teamtracker-api/internal/transport/rest"
	"github.com/teamtracker/teamtracker-api/internal/transport/swagger"
	"github.com/teamtracker/teamtracker-api/internal/user"
	userRepo "github.com/teamtracker/teamtracker-api/internal/user/postgres"
	"github.com/teamtracker/teamtracker-api/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.Origins(), deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		log.Warn("openapi spec validation failed", "error", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same pgx connection pool; TranslateError turns
	// driver unique-violation errors into gorm.ErrDuplicatedKey.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	provider := identity.NewClient(identity.Config{
		BaseURL:        config.Identity.BaseURL,
		AnonKey:        config.Identity.AnonKey,
		ServiceKey:     config.Identity.ServiceKey,
		RequestTimeout: config.Identity.RequestTimeout,
	}, log)

	users := userRepo.NewUserRepository(gormDB)
	employees := employeeRepo.NewEmployeeRepository(gormDB)
	leaves := leaveRepo.NewLeaveRepository(gormDB)
	notes := noteRepo.NewNoteRepository(gormDB)
	extraDays := extradayRepo.NewExtraDayRepository(gormDB)
	registries := registryRepo.NewRegistryRepository(gormDB)

	registryService := registry.NewService(registries, log)
	authService := auth.NewService(provider, users, log)
	userService := user.NewService(users, provider, log)
	employeeService := employee.NewService(employees, log)
	leaveService := leave.NewService(leaves, registryService, log)
	noteService := note.NewService(notes, registryService, log)
	extraDayService := extraday.NewService(extraDays, log)

	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService),
		Employee: employee.NewHandler(employeeService),
		Leave:    leave.NewHandler(leaveService),
		Note:     note.NewHandler(noteService),
		ExtraDay: extraday.NewHandler(extraDayService),
		User:     user.NewHandler(userService),
		Registry: registry.NewHandler(transport.NewBaseHandler(log), registryService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   log,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// initDB initializes the database connection
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
