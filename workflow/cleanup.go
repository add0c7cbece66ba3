package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/config"
	"github.com/uniformhub/uniforms_backend/utils"
)

// The cleanup planner and executor are deliberately two separate entry
// points. Plan is read-only: it snapshots every orphaned record to a backup
// file and prints the delete statements an operator would run. Execute is a
// different command, takes a plan file produced earlier, and is the only
// code path in the engine that deletes anything. The store has no cascading
// deletes or foreign keys, so this gate stays human-shaped.

type CollectionCleanup struct {
	Collection      string `json:"collection"`
	CheckName       string `json:"checkName"`
	Ids             []int  `json:"ids"`
	BackupFile      string `json:"backupFile"`
	DeleteStatement string `json:"deleteStatement"`
}

type CleanupPlan struct {
	RunId       string              `json:"runId"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Collections []CollectionCleanup `json:"collections"`
	TotalIds    int                 `json:"totalIds"`
}

type cleanupSet struct {
	check string
	table string
	edges []orphanEdge
}

func cleanupSets() []cleanupSet {
	return []cleanupSet{
		{check: "orphanedShipments", table: "shipments", edges: []orphanEdge{shipmentPrEdge()}},
		{check: "orphanedGoodsReceiptNotes", table: "goods_receipt_notes", edges: []orphanEdge{grnPoEdge()}},
		{check: "orphanedInvoices", table: "invoices", edges: []orphanEdge{invoiceGrnEdge()}},
	}
}

// BuildCleanupPlan identifies the orphan sets the cascade auditor reports
// and emits a reviewable plan: JSON backups of the full orphaned documents
// plus the exact bulk-delete filter per collection. It issues zero deletes.
func BuildCleanupPlan(db *gorm.DB, logger *logrus.Logger, runId string) (*CleanupPlan, error) {
	plan := &CleanupPlan{
		RunId:       runId,
		GeneratedAt: time.Now().UTC(),
		Collections: []CollectionCleanup{},
	}

	for _, set := range cleanupSets() {
		ids := []int{}
		for _, edge := range set.edges {
			orphans, _, err := findOrphans[string](db, edge)
			if err != nil {
				return nil, err
			}
			for _, o := range orphans {
				ids = append(ids, o.Id)
			}
		}
		ids = utils.UniqueSlice(ids)
		if len(ids) == 0 {
			continue
		}

		var docs []map[string]interface{}
		if err := db.Table(set.table).Where("id IN ?", ids).Find(&docs).Error; err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", set.table, err)
		}
		backupFile, err := utils.WriteJSONFile(config.BackupsDir(), "orphaned-"+set.table, docs)
		if err != nil {
			return nil, err
		}

		plan.Collections = append(plan.Collections, CollectionCleanup{
			Collection:      set.table,
			CheckName:       set.check,
			Ids:             ids,
			BackupFile:      backupFile,
			DeleteStatement: deleteStatement(set.table, ids),
		})
		plan.TotalIds += len(ids)

		logger.WithFields(logrus.Fields{
			"collection":  set.table,
			"orphans":     len(ids),
			"backup_file": backupFile,
		}).Info("cleanup plan entry")
	}

	return plan, nil
}

func deleteStatement(table string, ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("DELETE FROM %s WHERE id IN (%s);", table, strings.Join(parts, ", "))
}

type ExecuteResult struct {
	Collection string        `json:"collection"`
	Requested  int           `json:"requested"`
	Deleted    int           `json:"deleted"`
	Errors     []RecordError `json:"errors"`
}

// ExecuteCleanupPlan deletes exactly the primary-key sets recorded in a
// previously reviewed plan. It never re-derives orphan sets: what the
// operator reviewed is what gets deleted, one collection at a time.
//
// The plan file is operator-supplied input: only the collections the
// planner itself emits are deletable, and a plan naming any other table is
// rejected before the first delete.
func ExecuteCleanupPlan(db *gorm.DB, logger *logrus.Logger, plan *CleanupPlan) ([]ExecuteResult, error) {
	allowed := make(map[string]struct{})
	for _, set := range cleanupSets() {
		allowed[set.table] = struct{}{}
	}
	for _, c := range plan.Collections {
		if _, ok := allowed[c.Collection]; !ok {
			return nil, fmt.Errorf("plan names collection %q, which the planner never emits; refusing to execute", c.Collection)
		}
	}

	results := []ExecuteResult{}
	for _, c := range plan.Collections {
		result := ExecuteResult{
			Collection: c.Collection,
			Requested:  len(c.Ids),
			Errors:     []RecordError{},
		}
		if len(c.Ids) > 0 {
			res := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IN ?", c.Collection), c.Ids)
			if res.Error != nil {
				result.Errors = append(result.Errors, RecordError{Error: res.Error.Error()})
			} else {
				result.Deleted = int(res.RowsAffected)
			}
		}
		results = append(results, result)

		logger.WithFields(logrus.Fields{
			"collection": c.Collection,
			"requested":  result.Requested,
			"deleted":    result.Deleted,
		}).Warn("cleanup plan executed")
	}
	return results, nil
}
