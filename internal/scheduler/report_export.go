package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/onboard/internal/audit"
	"github.com/mrlokans/onboard/internal/config"
	"github.com/mrlokans/onboard/internal/entities"
	"github.com/mrlokans/onboard/internal/reports"
)

// File extensions per report format key. Unknown formats fall back to .txt.
var formatExtensions = map[string]string{
	"markdown": "md",
	"json":     "json",
	"csv":      "csv",
}

// UserLister provides the users included in scheduled reports.
type UserLister interface {
	ListRecent(limit int) ([]entities.User, error)
}

// ReportExportScheduler periodically renders the registrations report
// through the format registry and writes it to the export directory.
type ReportExportScheduler struct {
	users    UserLister
	registry *reports.Registry
	auditSvc *audit.Service
	cfg      config.Reports

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewReportExportScheduler creates a new scheduler instance.
func NewReportExportScheduler(users UserLister, registry *reports.Registry, auditSvc *audit.Service, cfg config.Reports) *ReportExportScheduler {
	return &ReportExportScheduler{
		users:    users,
		registry: registry,
		auditSvc: auditSvc,
		cfg:      cfg,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if report sync is enabled.
func (s *ReportExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.SyncEnabled {
		log.Printf("Report export scheduler: disabled")
		return nil
	}

	if s.cfg.ExportDir == "" {
		log.Printf("Report export scheduler: export directory not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.SyncSchedule, func() {
		s.runExport()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.SyncSchedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Report export scheduler: started with schedule '%s' (format: %s)",
		s.cfg.SyncSchedule, s.cfg.Format)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *ReportExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Report export scheduler: stopped")
}

// RunNow triggers an immediate export.
func (s *ReportExportScheduler) RunNow() {
	go s.runExport()
}

// IsRunning returns whether the scheduler is active.
func (s *ReportExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next export will occur.
func (s *ReportExportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runExport performs the actual export.
func (s *ReportExportScheduler) runExport() {
	log.Printf("Report export: starting (format: %s)", s.cfg.Format)

	users, err := s.users.ListRecent(s.cfg.RecentLimit)
	if err != nil {
		log.Printf("Report export: failed to list users: %v", err)
		s.auditSvc.LogExport(s.cfg.Format, "Failed to list users", err)
		return
	}

	report := reports.NewRegistrationsReport(users, time.Now())

	output, err := s.registry.Dispatch(s.cfg.Format, report)
	if err != nil {
		log.Printf("Report export: failed to render report: %v", err)
		s.auditSvc.LogExport(s.cfg.Format, "Failed to render report", err)
		return
	}

	if err := os.MkdirAll(s.cfg.ExportDir, 0755); err != nil {
		log.Printf("Report export: failed to create export directory: %v", err)
		s.auditSvc.LogExport(s.cfg.Format, "Failed to create export directory", err)
		return
	}

	ext, ok := formatExtensions[s.cfg.Format]
	if !ok {
		ext = "txt"
	}
	outputPath := filepath.Join(s.cfg.ExportDir, "registrations."+ext)

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		log.Printf("Report export: failed to write %s: %v", outputPath, err)
		s.auditSvc.LogExport(s.cfg.Format, "Failed to write "+outputPath, err)
		return
	}

	description := fmt.Sprintf("Exported %d registrations to %s", len(report.Rows), outputPath)
	log.Printf("Report export: %s", description)
	s.auditSvc.LogExport(s.cfg.Format, description, nil)
}
