package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/onboard/internal/audit"
	"github.com/mrlokans/onboard/internal/database/outbox"
	"github.com/mrlokans/onboard/internal/database/users"
	"github.com/mrlokans/onboard/internal/http"
	"github.com/mrlokans/onboard/internal/notifier"
	"github.com/mrlokans/onboard/internal/registration"
	"github.com/mrlokans/onboard/internal/reports"
	"github.com/mrlokans/onboard/internal/scheduler"
	"github.com/mrlokans/onboard/internal/tasks"
	"github.com/mrlokans/onboard/internal/validation"
)

// =============================================================================
// Registration Capabilities
// =============================================================================

var _ registration.Validator = (*validation.UserValidator)(nil)
var _ registration.UserStore = (*users.Repository)(nil)
var _ registration.Notifier = (*notifier.OutboxNotifier)(nil)
var _ registration.AuditLogger = (*audit.Service)(nil)

// =============================================================================
// Report Handlers
// =============================================================================

var _ reports.Handler = (*reports.MarkdownHandler)(nil)
var _ reports.Handler = (*reports.JSONHandler)(nil)
var _ reports.Handler = (*reports.CSVHandler)(nil)

// =============================================================================
// Outbox Consumers
// =============================================================================

var _ notifier.Outbox = (*outbox.Repository)(nil)
var _ tasks.NotificationStore = (*outbox.Repository)(nil)

// =============================================================================
// Report Data Sources
// =============================================================================

var _ scheduler.UserLister = (*users.Repository)(nil)
var _ http.UserLister = (*users.Repository)(nil)
var _ http.UserGetter = (*users.Repository)(nil)
