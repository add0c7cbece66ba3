package models

import (
	"time"

	"gorm.io/gorm"
)

// MigrationLog is the append-only audit trail of the unified-status
// migration. Every status-field write performed by the engine (and, once
// dual-write lands, by the CRUD paths) appends exactly one row. Nothing in
// this package exposes an update or delete on the collection.
//
// The log append and the status write it mirrors are two separate
// single-row writes with no surrounding transaction; a crash between them
// loses at most the log row, so the trail is at-least-once evidence.
type MigrationLog struct {
	ID                    int             `gorm:"primary_key" json:"id"`
	EntityType            EntityType      `gorm:"size:50;index:idx_migration_logs_entity;not null" json:"entityType"`
	EntityId              int             `gorm:"index:idx_migration_logs_entity;not null" json:"entityId"`
	EntityNumber          string          `gorm:"size:50" json:"entityNumber"`
	Action                MigrationAction `gorm:"size:30;not null" json:"action"`
	PreviousLegacyStatus  *string         `gorm:"size:100" json:"previousLegacyStatus"`
	NewLegacyStatus       *string         `gorm:"size:100" json:"newLegacyStatus"`
	PreviousUnifiedStatus *string         `gorm:"size:50" json:"previousUnifiedStatus"`
	NewUnifiedStatus      *string         `gorm:"size:50" json:"newUnifiedStatus"`
	Source                string          `gorm:"size:100;not null" json:"source"`
	UpdatedBy             string          `gorm:"size:100" json:"updatedBy"`
	RunId                 string          `gorm:"size:36;index" json:"runId"`
	Metadata              string          `gorm:"type:text" json:"metadata"`
	Timestamp             time.Time       `gorm:"autoCreateTime;index" json:"timestamp"`
}

func AppendMigrationLog(db *gorm.DB, entry *MigrationLog) error {
	return db.Create(entry).Error
}

// GetMigrationLogsForEntity returns the full trail for one record, oldest
// first.
func GetMigrationLogsForEntity(db *gorm.DB, entityType EntityType, entityId int) ([]MigrationLog, error) {
	var logs []MigrationLog
	err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityId).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

// GetMigrationLogsBetween returns entries in [from, to), oldest first.
func GetMigrationLogsBetween(db *gorm.DB, from time.Time, to time.Time) ([]MigrationLog, error) {
	var logs []MigrationLog
	err := db.Where("timestamp >= ? AND timestamp < ?", from, to).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

// CountMigrationLogsByAction summarizes the trail for the readiness
// evaluator's dual-write evidence section.
func CountMigrationLogsByAction(db *gorm.DB, action MigrationAction) (int64, error) {
	var count int64
	err := db.Model(&MigrationLog{}).Where("action = ?", action).Count(&count).Error
	return count, err
}
