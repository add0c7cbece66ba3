package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/models"
	"github.com/uniformhub/uniforms_backend/utils"
)

// RepairSource is the source tag written to unified_*_updated_by and to
// every migration log entry a repair run appends.
const RepairSource = "unified-status-repair"

type RepairOptions struct {
	// CompanyId restricts the pass to one tenant. Empty means all.
	CompanyId string
	// DryRun reports what would change without writing anything, migration
	// log included.
	DryRun bool
	// Strict additionally repairs records whose unified value is present
	// but disagrees with the mapping of the current legacy value. The
	// default pass only fills missing unified fields.
	Strict bool
}

type SkippedRecord struct {
	Id          int    `json:"id"`
	Number      string `json:"number"`
	LegacyValue string `json:"legacyValue"`
	Reason      string `json:"reason"`
}

type RecordError struct {
	Id     int    `json:"id"`
	Number string `json:"number"`
	Error  string `json:"error"`
}

type CollectionRepair struct {
	Collection string `json:"collection"`
	Scanned    int    `json:"scanned"`
	Repaired   int    `json:"repaired"`
	// EmptyLegacy counts rows a strict scan revisits that have no legacy
	// value but already carry a unified one; there is nothing to repair or
	// follow up on, so they are tallied rather than listed per record.
	EmptyLegacy int             `json:"emptyLegacy,omitempty"`
	Skipped     []SkippedRecord `json:"skipped"`
	Errors      []RecordError   `json:"errors"`
}

type RepairReport struct {
	RunId         string             `json:"runId"`
	Source        string             `json:"source"`
	GeneratedAt   time.Time          `json:"generatedAt"`
	DryRun        bool               `json:"dryRun"`
	Strict        bool               `json:"strict"`
	CompanyId     string             `json:"companyId,omitempty"`
	Collections   []CollectionRepair `json:"collections"`
	TotalRepaired int                `json:"totalRepaired"`
	TotalSkipped  int                `json:"totalSkipped"`
	TotalErrors   int                `json:"totalErrors"`
}

type statusRow struct {
	ID      int     `gorm:"column:id"`
	Number  *string `gorm:"column:doc_number"`
	Legacy  *string `gorm:"column:legacy_status"`
	Unified *string `gorm:"column:unified_value"`
}

// RunStatusRepair backfills missing unified-status fields from the legacy
// fields across all six collections. Inference is one-way and safe: a
// unified value is written only when the legacy value has exactly one
// defined mapping; anything else lands in the skipped list with its literal
// legacy value, never a guessed default.
//
// Idempotent: candidates are selected by missing (or, in strict mode,
// mismatched) unified value, so a second run over repaired data performs
// zero writes. A failed write is counted and the pass continues; only a
// scan failure aborts the run.
func RunStatusRepair(db *gorm.DB, logger *logrus.Logger, runId string, opts RepairOptions) (*RepairReport, error) {
	report := &RepairReport{
		RunId:       runId,
		Source:      RepairSource,
		GeneratedAt: time.Now().UTC(),
		DryRun:      opts.DryRun,
		Strict:      opts.Strict,
		CompanyId:   opts.CompanyId,
	}

	for _, t := range statusTargets() {
		result, err := repairTarget(db, logger, runId, t, opts)
		if err != nil {
			return nil, err
		}
		report.Collections = append(report.Collections, *result)
		report.TotalRepaired += result.Repaired
		report.TotalSkipped += len(result.Skipped)
		report.TotalErrors += len(result.Errors)
	}

	logger.WithFields(logrus.Fields{
		"run_id":   runId,
		"dry_run":  opts.DryRun,
		"strict":   opts.Strict,
		"repaired": report.TotalRepaired,
		"skipped":  report.TotalSkipped,
		"errors":   report.TotalErrors,
	}).Info("unified status repair pass finished")

	return report, nil
}

func repairTarget(db *gorm.DB, logger *logrus.Logger, runId string, t statusTarget, opts RepairOptions) (*CollectionRepair, error) {
	result := &CollectionRepair{
		Collection: string(t.Entity),
		Skipped:    []SkippedRecord{},
		Errors:     []RecordError{},
	}

	missing := fmt.Sprintf("%s IS NULL OR %s = ''", t.UnifiedColumn, t.UnifiedColumn)
	q := db.Table(t.Table).
		Select(fmt.Sprintf("id, %s AS doc_number, %s AS legacy_status, %s AS unified_value",
			t.NumberColumn, t.LegacyColumn, t.UnifiedColumn)).
		Order("id ASC")
	if t.Scope != "" {
		q = q.Where(t.Scope)
	}
	if opts.CompanyId != "" {
		q = q.Where("company_id = ?", opts.CompanyId)
	}
	if !opts.Strict {
		q = q.Where(missing)
	}

	var rows []statusRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.Entity, err)
	}
	result.Scanned = len(rows)

	for _, row := range rows {
		legacy := strings.TrimSpace(utils.DereferencePtr(row.Legacy))
		current := strings.TrimSpace(utils.DereferencePtr(row.Unified))

		if legacy == "" {
			if current != "" {
				result.EmptyLegacy++
				continue
			}
			result.Skipped = append(result.Skipped, SkippedRecord{
				Id:     row.ID,
				Number: utils.DereferencePtr(row.Number),
				Reason: "legacy status is empty; nothing to infer from",
			})
			continue
		}

		expected, ok := t.MapFn(legacy)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedRecord{
				Id:          row.ID,
				Number:      utils.DereferencePtr(row.Number),
				LegacyValue: legacy,
				Reason:      fmt.Sprintf("no mapping defined for legacy value %q", legacy),
			})
			continue
		}

		// Already consistent: zero writes. In the default pass this only
		// happens when a concurrent writer filled the field between scan
		// and repair, which is exactly the case the re-check guards.
		if current == expected {
			continue
		}

		if opts.DryRun {
			result.Repaired++
			logger.WithFields(logrus.Fields{
				"collection": t.Entity,
				"id":         row.ID,
				"legacy":     legacy,
				"unified":    expected,
			}).Info("dry-run: would repair unified status")
			continue
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			t.UnifiedColumn:                 expected,
			t.UnifiedColumn + "_updated_at": now,
			t.UnifiedColumn + "_updated_by": RepairSource,
		}
		// Targeted single-row update keyed by primary id; concurrent
		// application writes to unrelated fields are untouched.
		if err := db.Table(t.Table).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
			result.Errors = append(result.Errors, RecordError{
				Id:     row.ID,
				Number: utils.DereferencePtr(row.Number),
				Error:  err.Error(),
			})
			continue
		}
		result.Repaired++

		entry := &models.MigrationLog{
			EntityType:            t.Entity,
			EntityId:              row.ID,
			EntityNumber:          utils.DereferencePtr(row.Number),
			Action:                models.MigrationActionStatusRepair,
			PreviousLegacyStatus:  &legacy,
			NewLegacyStatus:       &legacy,
			PreviousUnifiedStatus: utils.NilIfEmpty(current),
			NewUnifiedStatus:      &expected,
			Source:                RepairSource,
			UpdatedBy:             RepairSource,
			RunId:                 runId,
		}
		if err := models.AppendMigrationLog(db, entry); err != nil {
			// The status write landed; losing the log row is the known
			// at-least-once gap. Surface it as a record error.
			result.Errors = append(result.Errors, RecordError{
				Id:     row.ID,
				Number: utils.DereferencePtr(row.Number),
				Error:  fmt.Sprintf("repaired but migration log append failed: %v", err),
			})
		}
	}

	return result, nil
}
