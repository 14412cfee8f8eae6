package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Reports
		Audit
		Security
		Tasks
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Reports struct {
		Format       string // Default report format key (markdown, json, csv)
		ExportDir    string // Directory for scheduled report exports
		SyncEnabled  bool
		SyncSchedule string // Cron format: "0 * * * *" = hourly
		RecentLimit  int    // Max registrations included per report (0 = all)
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Security struct {
		BcryptCost int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Report defaults
	v.SetDefault("report_format", "markdown")
	v.SetDefault("report_export_dir", "./reports")
	v.SetDefault("report_sync_enabled", false)
	v.SetDefault("report_sync_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("report_recent_limit", 100)

	// Audit defaults
	v.SetDefault("audit_retention_days", 30)

	// Security defaults
	v.SetDefault("bcrypt_cost", 12)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Reports: Reports{
			Format:       v.GetString("REPORT_FORMAT"),
			ExportDir:    v.GetString("REPORT_EXPORT_DIR"),
			SyncEnabled:  v.GetBool("REPORT_SYNC_ENABLED"),
			SyncSchedule: v.GetString("REPORT_SYNC_SCHEDULE"),
			RecentLimit:  v.GetInt("REPORT_RECENT_LIMIT"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Security: Security{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
