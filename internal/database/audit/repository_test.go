package audit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cognicard/cognicard/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_LogAndList(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.LogEvent(&entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "vcf_import",
		Description: "Imported 3 contacts from VCF",
		Status:      entities.AuditStatusSuccess,
	})
	require.NoError(t, err)

	events, err := repo.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditEventImport, events[0].EventType)
	assert.Equal(t, "vcf_import", events[0].Action)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "contact_delete",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &entities.AuditEvent{
		EventType: entities.AuditEventExport,
		Action:    "csv_export",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.LogEvent(old))
	require.NoError(t, repo.LogEvent(recent))

	deleted, err := repo.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, err := repo.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "csv_export", events[0].Action)
}
