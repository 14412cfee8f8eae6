package audit

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditdb "github.com/mrlokans/onboard/internal/database/audit"
	"github.com/mrlokans/onboard/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB, func()) {
	dbPath := "./test_audit_service_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	service := NewService(auditdb.NewRepository(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, db, cleanup
}

func TestService_Log_RecordsRegistrationEvent(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, service.Log("user_register"))

	events, total, err := service.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditEventRegistration, events[0].EventType)
	assert.Equal(t, "user_register", events[0].Action)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
}

func TestService_LogExport_RecordsFailure(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	service.LogExport("csv", "scheduled export", errors.New("disk full"))

	events := waitForEvents(t, service, 1)
	assert.Equal(t, entities.AuditEventExport, events[0].EventType)
	assert.Equal(t, "csv_export", events[0].Action)
	assert.Equal(t, entities.AuditStatusFailed, events[0].Status)
	assert.Equal(t, "disk full", events[0].ErrorMsg)
}

func TestService_LogNotification_TruncatesLongErrors(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	service.LogNotification(42, "welcome email", errors.New(strings.Repeat("x", 600)))

	events := waitForEvents(t, service, 1)
	assert.Equal(t, entities.AuditEventNotification, events[0].EventType)
	require.NotNil(t, events[0].EntityID)
	assert.Equal(t, uint(42), *events[0].EntityID)
	assert.Len(t, events[0].ErrorMsg, 500)
	assert.True(t, strings.HasSuffix(events[0].ErrorMsg, "..."))
}

func TestService_GetEventsByType(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, service.Log("user_register"))
	service.LogExport("json", "manual export", nil)
	waitForEvents(t, service, 2)

	events, total, err := service.GetEventsByType(entities.AuditEventExport, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "json_export", events[0].Action)
}

func TestService_DeleteOldEvents(t *testing.T) {
	service, db, cleanup := setupTestService(t)
	defer cleanup()

	old := &entities.AuditEvent{
		EventType: entities.AuditEventRegistration,
		Action:    "user_register",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-60 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, service.Log("user_register"))

	deleted, err := service.DeleteOldEvents(30 * 24 * time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := service.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

// waitForEvents polls until the async logger has persisted the expected
// number of events.
func waitForEvents(t *testing.T, service *Service, count int64) []entities.AuditEvent {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events, total, err := service.GetEvents(10, 0)
		require.NoError(t, err)
		if total >= count {
			return events
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %d audit events", count)
	return nil
}
