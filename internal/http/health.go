package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/onboard/internal/database"
	"github.com/mrlokans/onboard/internal/reports"
	"github.com/mrlokans/onboard/internal/tasks"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports the state of the service's backing pieces:
// the main database, the dedicated tasks database, and the report
// format registry. The task client may be nil when the queue is disabled.
type HealthController struct {
	db       *database.Database
	tasks    *tasks.Client
	registry *reports.Registry
	version  string
}

func NewHealthController(db *database.Database, taskClient *tasks.Client, registry *reports.Registry, version string) *HealthController {
	return &HealthController{
		db:       db,
		tasks:    taskClient,
		registry: registry,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.pingDatabase(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.tasks != nil {
		if err := h.tasks.Ping(c.Request.Context()); err != nil {
			checks["task_queue"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["task_queue"] = "ok"
		}
	} else {
		// Queue disabled: notifications wait in the outbox, not a failure
		checks["task_queue"] = "disabled"
	}

	if h.registry != nil {
		formats := h.registry.Formats()
		if len(formats) == 0 {
			checks["report_formats"] = "error: no formats registered"
			status = "unhealthy"
		} else {
			checks["report_formats"] = strings.Join(formats, ", ")
		}
	} else {
		checks["report_formats"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) pingDatabase() error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
