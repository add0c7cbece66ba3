package workflow

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/uniformhub/uniforms_backend/models"
	"github.com/uniformhub/uniforms_backend/utils"
)

// Planning snapshots every orphaned document to a backup file and deletes
// nothing.
func TestCleanupPlan_SnapshotsWithoutDeleting(t *testing.T) {
	t.Setenv("BACKUPS_DIR", t.TempDir())
	db := openTestDB(t)

	order := models.Order{OrderNumber: "ORD-1", CompanyId: "c-1", Status: "Approved", PrNumber: strPtr("PR-001")}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	shipments := []models.Shipment{
		{ShipmentNumber: "SHP-LINKED", CompanyId: "c-1", PrNumber: "PR-001", ShipmentStatus: "In Transit"},
		{ShipmentNumber: "SHP-ORPHAN", CompanyId: "c-1", PrNumber: "PR-404", ShipmentStatus: "In Transit"},
	}
	for i := range shipments {
		if err := db.Create(&shipments[i]).Error; err != nil {
			t.Fatalf("seed shipment: %v", err)
		}
	}

	plan, err := BuildCleanupPlan(db, testLogger(), uuid.NewString())
	if err != nil {
		t.Fatalf("BuildCleanupPlan: %v", err)
	}
	if len(plan.Collections) != 1 {
		t.Fatalf("plan has %d collections, want 1", len(plan.Collections))
	}
	entry := plan.Collections[0]
	if entry.Collection != "shipments" || entry.CheckName != "orphanedShipments" {
		t.Fatalf("unexpected plan entry: %+v", entry)
	}
	if len(entry.Ids) != 1 || entry.Ids[0] != shipments[1].ID {
		t.Fatalf("plan ids = %v, want [%d]", entry.Ids, shipments[1].ID)
	}
	if !strings.Contains(entry.DeleteStatement, "DELETE FROM shipments WHERE id IN") {
		t.Fatalf("delete statement = %q", entry.DeleteStatement)
	}

	if _, err := os.Stat(entry.BackupFile); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	var docs []map[string]interface{}
	if err := utils.ReadJSONFile(entry.BackupFile, &docs); err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("backup holds %d docs, want 1", len(docs))
	}
	if got := docs[0]["shipment_number"]; got != "SHP-ORPHAN" {
		t.Fatalf("backup document shipment_number = %v, want SHP-ORPHAN", got)
	}

	var remaining int64
	if err := db.Table("shipments").Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("planning deleted records: %d shipments remain, want 2", remaining)
	}
}

// Execution deletes exactly the ids recorded in the plan, even when the
// dataset drifted after the plan was written.
func TestCleanupExecute_DeletesOnlyPlannedIds(t *testing.T) {
	t.Setenv("BACKUPS_DIR", t.TempDir())
	db := openTestDB(t)

	shipments := []models.Shipment{
		{ShipmentNumber: "SHP-A", CompanyId: "c-1", PrNumber: "PR-404", ShipmentStatus: "In Transit"},
		{ShipmentNumber: "SHP-B", CompanyId: "c-1", PrNumber: "PR-405", ShipmentStatus: "In Transit"},
	}
	for i := range shipments {
		if err := db.Create(&shipments[i]).Error; err != nil {
			t.Fatalf("seed shipment: %v", err)
		}
	}

	plan, err := BuildCleanupPlan(db, testLogger(), uuid.NewString())
	if err != nil {
		t.Fatalf("BuildCleanupPlan: %v", err)
	}
	if plan.TotalIds != 2 {
		t.Fatalf("plan TotalIds = %d, want 2", plan.TotalIds)
	}

	// New orphan appears after the plan was reviewed; it must survive.
	late := models.Shipment{ShipmentNumber: "SHP-LATE", CompanyId: "c-1", PrNumber: "PR-500", ShipmentStatus: "In Transit"}
	if err := db.Create(&late).Error; err != nil {
		t.Fatalf("seed late shipment: %v", err)
	}

	results, err := ExecuteCleanupPlan(db, testLogger(), plan)
	if err != nil {
		t.Fatalf("ExecuteCleanupPlan: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Deleted != 2 || len(results[0].Errors) != 0 {
		t.Fatalf("result = %+v, want 2 deletions and no errors", results[0])
	}

	var survivors []models.Shipment
	if err := db.Find(&survivors).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(survivors) != 1 || survivors[0].ShipmentNumber != "SHP-LATE" {
		t.Fatalf("survivors = %+v, want only SHP-LATE", survivors)
	}
}

// A plan naming a table the planner never emits is rejected outright;
// nothing is deleted from any collection. Plan files are operator-supplied
// input and the executor is the only deleting code path.
func TestCleanupExecute_RejectsUnknownCollection(t *testing.T) {
	db := openTestDB(t)
	order := models.Order{OrderNumber: "ORD-1", CompanyId: "c-1", Status: "Approved"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	shipment := models.Shipment{ShipmentNumber: "SHP-1", CompanyId: "c-1", PrNumber: "PR-404", ShipmentStatus: "In Transit"}
	if err := db.Create(&shipment).Error; err != nil {
		t.Fatalf("seed shipment: %v", err)
	}

	plan := &CleanupPlan{
		RunId: uuid.NewString(),
		Collections: []CollectionCleanup{
			{Collection: "shipments", CheckName: "orphanedShipments", Ids: []int{shipment.ID}},
			{Collection: "orders", CheckName: "orphanedShipments", Ids: []int{order.ID}},
		},
	}
	results, err := ExecuteCleanupPlan(db, testLogger(), plan)
	if err == nil {
		t.Fatal("tampered plan executed without error")
	}
	if !strings.Contains(err.Error(), "orders") {
		t.Fatalf("error does not name the offending collection: %v", err)
	}
	if results != nil {
		t.Fatalf("got results %v from a rejected plan", results)
	}

	var orderCount, shipmentCount int64
	if err := db.Table("orders").Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := db.Table("shipments").Count(&shipmentCount).Error; err != nil {
		t.Fatalf("count shipments: %v", err)
	}
	if orderCount != 1 || shipmentCount != 1 {
		t.Fatalf("rejected plan still deleted rows: orders=%d shipments=%d", orderCount, shipmentCount)
	}
}

// Running an already-applied plan again deletes nothing further.
func TestCleanupExecute_Rerunnable(t *testing.T) {
	t.Setenv("BACKUPS_DIR", t.TempDir())
	db := openTestDB(t)

	shipment := models.Shipment{ShipmentNumber: "SHP-A", CompanyId: "c-1", PrNumber: "PR-404", ShipmentStatus: "In Transit"}
	if err := db.Create(&shipment).Error; err != nil {
		t.Fatalf("seed shipment: %v", err)
	}
	plan, err := BuildCleanupPlan(db, testLogger(), uuid.NewString())
	if err != nil {
		t.Fatalf("BuildCleanupPlan: %v", err)
	}
	if _, err := ExecuteCleanupPlan(db, testLogger(), plan); err != nil {
		t.Fatalf("first execute: %v", err)
	}
	results, err := ExecuteCleanupPlan(db, testLogger(), plan)
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	if results[0].Deleted != 0 {
		t.Fatalf("second run deleted %d records, want 0", results[0].Deleted)
	}
}
