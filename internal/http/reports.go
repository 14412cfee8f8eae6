package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/onboard/internal/entities"
	"github.com/mrlokans/onboard/internal/reports"
)

// Content types per report format key. Presentation concern only: the
// registry itself knows nothing about formats.
var reportContentTypes = map[string]string{
	"markdown": "text/markdown; charset=utf-8",
	"json":     "application/json; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
}

// UserLister provides the users included in on-demand reports.
type UserLister interface {
	ListRecent(limit int) ([]entities.User, error)
}

// ReportsController serves registration reports in any registered format.
type ReportsController struct {
	registry     *reports.Registry
	users        UserLister
	defaultLimit int
}

// NewReportsController creates a new ReportsController.
func NewReportsController(registry *reports.Registry, users UserLister, defaultLimit int) *ReportsController {
	return &ReportsController{
		registry:     registry,
		users:        users,
		defaultLimit: defaultLimit,
	}
}

// GetReport handles GET /api/reports/:format.
// The format path parameter selects the handler; an unregistered format
// is a 404 listing the available formats.
func (rc *ReportsController) GetReport(c *gin.Context) {
	format := c.Param("format")

	limit := rc.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	userList, err := rc.users.ListRecent(limit)
	if err != nil {
		respondInternalError(c, err, "list users for report")
		return
	}

	report := reports.NewRegistrationsReport(userList, time.Now())

	output, err := rc.registry.Dispatch(format, report)
	if err != nil {
		if errors.Is(err, reports.ErrUnknownKey) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "unknown report format: " + format,
				Details: gin.H{"available_formats": rc.registry.Formats()},
			})
			return
		}
		respondInternalError(c, err, "generate report")
		return
	}

	contentType, ok := reportContentTypes[format]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, []byte(output))
}

// ListFormats handles GET /api/reports.
func (rc *ReportsController) ListFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"formats": rc.registry.Formats()})
}
