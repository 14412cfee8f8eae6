package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/onboard/internal/audit"
	"github.com/mrlokans/onboard/internal/config"
	"github.com/mrlokans/onboard/internal/database"
	auditdb "github.com/mrlokans/onboard/internal/database/audit"
	"github.com/mrlokans/onboard/internal/database/outbox"
	"github.com/mrlokans/onboard/internal/database/users"
	http_controllers "github.com/mrlokans/onboard/internal/http"
	"github.com/mrlokans/onboard/internal/notifier"
	"github.com/mrlokans/onboard/internal/registration"
	"github.com/mrlokans/onboard/internal/reports"
	"github.com/mrlokans/onboard/internal/scheduler"
	"github.com/mrlokans/onboard/internal/tasks"
	"github.com/mrlokans/onboard/internal/validation"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until an interrupt or termination signal,
// then shuts down gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires all services together and starts the HTTP server. All
// dependencies are constructed here once and passed down explicitly.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Onboard v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	usersRepo := users.NewRepository(db.DB)
	auditRepo := auditdb.NewRepository(db.DB)
	outboxRepo := outbox.NewRepository(db.DB)

	auditService := audit.NewService(auditRepo)
	outboxNotifier := notifier.NewOutboxNotifier(outboxRepo)
	userValidator := validation.NewUserValidator()

	registrationService, err := registration.NewService(userValidator, usersRepo, outboxNotifier, auditService)
	if err != nil {
		log.Fatalf("Failed to construct registration service: %v", err)
	}

	registry := reports.NewRegistry()
	handlers := map[string]reports.Handler{
		"markdown": reports.NewMarkdownHandler(),
		"json":     reports.NewJSONHandler(),
		"csv":      reports.NewCSVHandler(),
	}
	for key, handler := range handlers {
		if err := registry.Register(key, handler); err != nil {
			log.Fatalf("Failed to register %s report handler: %v", key, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background notification delivery
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		taskClient.Register(
			tasks.NewDeliverNotificationQueue(outboxRepo),
			tasks.NewDeliverPendingQueue(outboxRepo),
		)
		go taskClient.Start(ctx)
	} else {
		log.Printf("Task queue disabled, notifications stay in the outbox")
	}

	// Scheduled report exports
	reportScheduler := scheduler.NewReportExportScheduler(usersRepo, registry, auditService, cfg.Reports)
	if err := reportScheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start report export scheduler: %v", err)
	}

	// Audit retention cleanup at startup
	if cfg.Audit.RetentionDays > 0 {
		retention := time.Duration(cfg.Audit.RetentionDays) * 24 * time.Hour
		if deleted, err := auditService.DeleteOldEvents(retention); err != nil {
			log.Printf("Failed to clean up old audit events: %v", err)
		} else if deleted > 0 {
			log.Printf("Deleted %d audit events older than %d days", deleted, cfg.Audit.RetentionDays)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Registration:      registrationService,
		Users:             usersRepo,
		Registry:          registry,
		Database:          db,
		TaskClient:        taskClient,
		BcryptCost:        cfg.Security.BcryptCost,
		ReportRecentLimit: cfg.Reports.RecentLimit,
		Version:           version,
	})

	Serve(router, cfg, func(shutdownCtx context.Context) {
		reportScheduler.Stop()
		if taskClient != nil {
			taskClient.Stop(shutdownCtx)
			if err := taskClient.Close(); err != nil {
				log.Printf("Failed to close task queue: %v", err)
			}
		}
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}
