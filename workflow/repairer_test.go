package workflow

import (
	"testing"

	"github.com/google/uuid"

	"github.com/uniformhub/uniforms_backend/models"
)

// An order with a mapped legacy status and no unified field gets exactly
// the expected unified value, the companion fields, and one migration log
// entry with both before/after values populated.
func TestRepair_BackfillsFromLegacyStatus(t *testing.T) {
	db := openTestDB(t)
	order := models.Order{
		OrderNumber: "ORD-001",
		CompanyId:   "c-1",
		Status:      "Awaiting fulfilment",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	report, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{})
	if err != nil {
		t.Fatalf("RunStatusRepair: %v", err)
	}
	if report.TotalRepaired != 1 {
		t.Fatalf("TotalRepaired = %d, want 1", report.TotalRepaired)
	}

	var got models.Order
	if err := db.First(&got, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if got.UnifiedStatus == nil || *got.UnifiedStatus != models.OrderUnifiedStatusInFulfilment {
		t.Fatalf("unified_status = %v, want IN_FULFILMENT", got.UnifiedStatus)
	}
	if got.UnifiedStatusUpdatedAt == nil {
		t.Fatal("unified_status_updated_at not set")
	}
	if got.UnifiedStatusUpdatedBy == nil || *got.UnifiedStatusUpdatedBy != RepairSource {
		t.Fatalf("unified_status_updated_by = %v, want %s", got.UnifiedStatusUpdatedBy, RepairSource)
	}

	logs, err := models.GetMigrationLogsForEntity(db, models.EntityTypeOrder, order.ID)
	if err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("migration logs = %d, want 1", len(logs))
	}
	entry := logs[0]
	if entry.Action != models.MigrationActionStatusRepair {
		t.Fatalf("action = %s, want STATUS_REPAIR", entry.Action)
	}
	if entry.PreviousLegacyStatus == nil || *entry.PreviousLegacyStatus != "Awaiting fulfilment" {
		t.Fatalf("previous legacy = %v", entry.PreviousLegacyStatus)
	}
	if entry.NewUnifiedStatus == nil || *entry.NewUnifiedStatus != string(models.OrderUnifiedStatusInFulfilment) {
		t.Fatalf("new unified = %v", entry.NewUnifiedStatus)
	}
}

// Unmapped legacy vocabulary lands in skipped with the literal value, the
// unified field stays absent, and a second run skips identically.
func TestRepair_UnmappedLegacyValueIsSkippedNeverDefaulted(t *testing.T) {
	db := openTestDB(t)
	pr := models.Order{
		OrderNumber: "ORD-002",
		CompanyId:   "c-1",
		Status:      "Approved",
		PrNumber:    strPtr("PR-100"),
		PrStatus:    strPtr("UNKNOWN_LEGACY_VALUE"),
	}
	if err := db.Create(&pr).Error; err != nil {
		t.Fatalf("seed pr: %v", err)
	}

	for run := 1; run <= 2; run++ {
		report, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{})
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		var prRepair *CollectionRepair
		for i := range report.Collections {
			if report.Collections[i].Collection == string(models.EntityTypePurchaseRequisition) {
				prRepair = &report.Collections[i]
			}
		}
		if prRepair == nil {
			t.Fatal("no PurchaseRequisition section in report")
		}
		if prRepair.Repaired != 0 {
			t.Fatalf("run %d: repaired = %d, want 0", run, prRepair.Repaired)
		}
		if len(prRepair.Skipped) != 1 {
			t.Fatalf("run %d: skipped = %d, want 1", run, len(prRepair.Skipped))
		}
		skip := prRepair.Skipped[0]
		if skip.LegacyValue != "UNKNOWN_LEGACY_VALUE" {
			t.Fatalf("run %d: skipped legacy = %q", run, skip.LegacyValue)
		}
	}

	var got models.Order
	if err := db.First(&got, pr.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.UnifiedPrStatus != nil {
		t.Fatalf("unified_pr_status = %v, want absent", *got.UnifiedPrStatus)
	}
}

// Re-running against repaired data performs zero additional writes and
// leaves coverage identical.
func TestRepair_Idempotent(t *testing.T) {
	db := openTestDB(t)
	seed := []models.Shipment{
		{ShipmentNumber: "SHP-1", CompanyId: "c-1", PrNumber: "PR-1", ShipmentStatus: "In Transit"},
		{ShipmentNumber: "SHP-2", CompanyId: "c-1", PrNumber: "PR-2", ShipmentStatus: "Delivered"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	first, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.TotalRepaired != 2 {
		t.Fatalf("first run repaired = %d, want 2", first.TotalRepaired)
	}
	coverageAfterFirst, err := RunCoverageAudit(db, testLogger(), uuid.NewString(), "")
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}

	second, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.TotalRepaired != 0 {
		t.Fatalf("second run repaired = %d, want 0", second.TotalRepaired)
	}
	coverageAfterSecond, err := RunCoverageAudit(db, testLogger(), uuid.NewString(), "")
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	if coverageAfterFirst.Aggregate != coverageAfterSecond.Aggregate {
		t.Fatalf("coverage moved between runs: %.2f -> %.2f",
			coverageAfterFirst.Aggregate, coverageAfterSecond.Aggregate)
	}

	var logCount int64
	if err := db.Model(&models.MigrationLog{}).
		Where("action = ?", models.MigrationActionStatusRepair).
		Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 2 {
		t.Fatalf("STATUS_REPAIR log entries = %d, want exactly one per write", logCount)
	}
}

// Coverage after a successful repair run never decreases.
func TestRepair_CoverageMonotonicity(t *testing.T) {
	db := openTestDB(t)
	rows := []models.Invoice{
		{InvoiceNumber: "INV-1", CompanyId: "c-1", GrnNumber: "GRN-1", InvoiceStatus: "Paid"},
		{InvoiceNumber: "INV-2", CompanyId: "c-1", GrnNumber: "GRN-2", InvoiceStatus: "NOT_A_REAL_STATUS"},
		{InvoiceNumber: "INV-3", CompanyId: "c-1", GrnNumber: "GRN-3", InvoiceStatus: "Draft"},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	before, err := RunCoverageAudit(db, testLogger(), uuid.NewString(), "")
	if err != nil {
		t.Fatalf("coverage before: %v", err)
	}
	if _, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{}); err != nil {
		t.Fatalf("repair: %v", err)
	}
	after, err := RunCoverageAudit(db, testLogger(), uuid.NewString(), "")
	if err != nil {
		t.Fatalf("coverage after: %v", err)
	}
	if after.Aggregate < before.Aggregate {
		t.Fatalf("coverage decreased: %.2f -> %.2f", before.Aggregate, after.Aggregate)
	}
}

// Dry-run reports the would-be repairs but writes nothing, migration log
// included.
func TestRepair_DryRunWritesNothing(t *testing.T) {
	db := openTestDB(t)
	grn := models.GoodsReceiptNote{GrnNumber: "GRN-9", CompanyId: "c-1", PoNumber: "PO-9", GrnStatus: "Accepted"}
	if err := db.Create(&grn).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if report.TotalRepaired != 1 {
		t.Fatalf("dry run should report 1 candidate, got %d", report.TotalRepaired)
	}

	var got models.GoodsReceiptNote
	if err := db.First(&got, grn.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.UnifiedGrnStatus != nil {
		t.Fatal("dry run wrote a unified value")
	}
	var logCount int64
	if err := db.Model(&models.MigrationLog{}).Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 0 {
		t.Fatalf("dry run appended %d log entries", logCount)
	}
}

// A rejected write for one record is counted against that record and the
// pass keeps going: later records and later collections are still
// repaired, and only successful writes produce log entries.
func TestRepair_WriteFailureIsCountedAndBatchContinues(t *testing.T) {
	db := openTestDB(t)
	shipments := []models.Shipment{
		{ShipmentNumber: "SHP-1", CompanyId: "c-1", PrNumber: "PR-1", ShipmentStatus: "In Transit"},
		{ShipmentNumber: "SHP-2", CompanyId: "c-1", PrNumber: "PR-2", ShipmentStatus: "Shipped"},
	}
	for i := range shipments {
		if err := db.Create(&shipments[i]).Error; err != nil {
			t.Fatalf("seed shipment: %v", err)
		}
	}
	invoice := models.Invoice{InvoiceNumber: "INV-1", CompanyId: "c-1", GrnNumber: "GRN-1", InvoiceStatus: "Paid"}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	// Both shipments map to IN_TRANSIT; the unique index makes the second
	// write fail while everything else stays writable.
	if err := db.Exec("CREATE UNIQUE INDEX idx_shipments_unified_unique ON shipments(unified_shipment_status)").Error; err != nil {
		t.Fatalf("create index: %v", err)
	}

	report, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{})
	if err != nil {
		t.Fatalf("RunStatusRepair: %v", err)
	}
	if report.TotalRepaired != 2 {
		t.Fatalf("TotalRepaired = %d, want 2 (one shipment, one invoice)", report.TotalRepaired)
	}
	if report.TotalErrors != 1 {
		t.Fatalf("TotalErrors = %d, want 1", report.TotalErrors)
	}

	var shipmentRepair *CollectionRepair
	for i := range report.Collections {
		if report.Collections[i].Collection == string(models.EntityTypeShipment) {
			shipmentRepair = &report.Collections[i]
		}
	}
	if shipmentRepair == nil {
		t.Fatal("no Shipment section in report")
	}
	if shipmentRepair.Repaired != 1 || len(shipmentRepair.Errors) != 1 {
		t.Fatalf("shipments = repaired %d / errors %d, want 1/1", shipmentRepair.Repaired, len(shipmentRepair.Errors))
	}
	failed := shipmentRepair.Errors[0]
	if failed.Id != shipments[1].ID || failed.Error == "" {
		t.Fatalf("error record = %+v, want id %d with a message", failed, shipments[1].ID)
	}

	var got models.Shipment
	if err := db.First(&got, shipments[1].ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.UnifiedShipmentStatus != nil {
		t.Fatalf("failed record still got unified value %v", *got.UnifiedShipmentStatus)
	}
	var logCount int64
	if err := db.Model(&models.MigrationLog{}).
		Where("action = ?", models.MigrationActionStatusRepair).
		Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 2 {
		t.Fatalf("STATUS_REPAIR log entries = %d, want one per successful write", logCount)
	}
}

// A strict pass rescans rows that already carry a unified value; the ones
// with no legacy value at all are a tally, not a per-record skip entry.
func TestRepair_StrictTalliesEmptyLegacyWithUnified(t *testing.T) {
	db := openTestDB(t)
	pending := models.ShipmentUnifiedStatusPending
	rows := []models.Shipment{
		{ShipmentNumber: "SHP-1", CompanyId: "c-1", PrNumber: "PR-1", UnifiedShipmentStatus: &pending},
		{ShipmentNumber: "SHP-2", CompanyId: "c-1", PrNumber: "PR-2"},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	report, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{Strict: true})
	if err != nil {
		t.Fatalf("strict run: %v", err)
	}
	var shipmentRepair *CollectionRepair
	for i := range report.Collections {
		if report.Collections[i].Collection == string(models.EntityTypeShipment) {
			shipmentRepair = &report.Collections[i]
		}
	}
	if shipmentRepair == nil {
		t.Fatal("no Shipment section in report")
	}
	if shipmentRepair.EmptyLegacy != 1 {
		t.Fatalf("EmptyLegacy = %d, want 1", shipmentRepair.EmptyLegacy)
	}
	if len(shipmentRepair.Skipped) != 1 {
		t.Fatalf("skipped = %d, want only the record with no status at all", len(shipmentRepair.Skipped))
	}
	if shipmentRepair.Skipped[0].Id != rows[1].ID {
		t.Fatalf("skipped id = %d, want %d", shipmentRepair.Skipped[0].Id, rows[1].ID)
	}
}

// Strict mode also corrects a unified value that disagrees with the
// mapping of the current legacy value; the default pass leaves it alone.
func TestRepair_StrictFixesMismatches(t *testing.T) {
	db := openTestDB(t)
	wrong := models.PoUnifiedStatusDraft
	po := models.PurchaseOrder{
		PoNumber:        "PO-1",
		CompanyId:       "c-1",
		PoStatus:        "Completed",
		UnifiedPoStatus: &wrong,
	}
	if err := db.Create(&po).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{})
	if err != nil {
		t.Fatalf("default run: %v", err)
	}
	if report.TotalRepaired != 0 {
		t.Fatalf("default run repaired = %d, want 0", report.TotalRepaired)
	}

	report, err = RunStatusRepair(db, testLogger(), uuid.NewString(), RepairOptions{Strict: true})
	if err != nil {
		t.Fatalf("strict run: %v", err)
	}
	if report.TotalRepaired != 1 {
		t.Fatalf("strict run repaired = %d, want 1", report.TotalRepaired)
	}

	var got models.PurchaseOrder
	if err := db.First(&got, po.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.UnifiedPoStatus == nil || *got.UnifiedPoStatus != models.PoUnifiedStatusCompleted {
		t.Fatalf("unified_po_status = %v, want COMPLETED", got.UnifiedPoStatus)
	}
}
