package workflow

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/models"
)

// previewLimit caps every finding list in a cascade report; the full count
// is always reported, the detail dump never is.
const previewLimit = 30

// OrphanSummary identifies one offending record and the reference that
// failed to resolve.
type OrphanSummary struct {
	Id        int    `json:"id"`
	Number    string `json:"number,omitempty"`
	ParentKey string `json:"parentKey"`
}

type CascadeCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	// Scanned is the number of child records the check examined; Count the
	// number of violations among them.
	Scanned        int             `json:"scanned"`
	Count          int             `json:"count"`
	Preview        []OrphanSummary `json:"preview"`
	TruncatedCount int             `json:"truncatedCount"`
}

type CascadeAuditReport struct {
	RunId         string         `json:"runId"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	Checks        []CascadeCheck `json:"checks"`
	TotalFindings int            `json:"totalFindings"`
}

// orphanEdge describes one parent/child reference pair for the generic
// orphan finder. The store enforces none of these references, so each edge
// is resolved by an application-level scan: collect the distinct parent
// keys, then flag every child whose key is not among them.
type orphanEdge struct {
	Name            string
	ChildTable      string
	ChildNumberExpr string // SQL expression for the child's display number, "''" when none
	ChildKeyColumn  string
	ChildKeyFilter  string // WHERE fragment selecting children that carry the reference
	ParentTable     string
	ParentKeyColumn string
	ParentKeyFilter string
}

func shipmentPrEdge() orphanEdge {
	return orphanEdge{
		Name:            "orphanedShipments",
		ChildTable:      "shipments",
		ChildNumberExpr: "shipment_number",
		ChildKeyColumn:  "pr_number",
		ChildKeyFilter:  "pr_number <> ''",
		ParentTable:     "orders",
		ParentKeyColumn: "pr_number",
		ParentKeyFilter: "pr_number IS NOT NULL AND pr_number <> ''",
	}
}

func grnPoEdge() orphanEdge {
	return orphanEdge{
		Name:            "orphanedGoodsReceiptNotes",
		ChildTable:      "goods_receipt_notes",
		ChildNumberExpr: "grn_number",
		ChildKeyColumn:  "po_number",
		ChildKeyFilter:  "po_number <> ''",
		ParentTable:     "purchase_orders",
		ParentKeyColumn: "po_number",
		ParentKeyFilter: "po_number <> ''",
	}
}

func invoiceGrnEdge() orphanEdge {
	return orphanEdge{
		Name:            "orphanedInvoices",
		ChildTable:      "invoices",
		ChildNumberExpr: "invoice_number",
		ChildKeyColumn:  "grn_number",
		ChildKeyFilter:  "grn_number <> ''",
		ParentTable:     "goods_receipt_notes",
		ParentKeyColumn: "grn_number",
		ParentKeyFilter: "grn_number <> ''",
	}
}

func prPoEdge() orphanEdge {
	return orphanEdge{
		Name:            "orphanedRequisitionPoLinks",
		ChildTable:      "orders",
		ChildNumberExpr: "pr_number",
		ChildKeyColumn:  "po_number",
		ChildKeyFilter:  "pr_number IS NOT NULL AND pr_number <> '' AND po_number IS NOT NULL AND po_number <> ''",
		ParentTable:     "purchase_orders",
		ParentKeyColumn: "po_number",
		ParentKeyFilter: "po_number <> ''",
	}
}

type childScan[K comparable] struct {
	ID     int    `gorm:"column:id"`
	Number string `gorm:"column:doc_number"`
	Key    K      `gorm:"column:child_key"`
}

// findOrphans resolves one edge. Generic over the key type because the
// document-style references are strings for workflow documents and ints for
// the secondary join records.
func findOrphans[K comparable](db *gorm.DB, e orphanEdge) ([]OrphanSummary, int, error) {
	var keys []K
	if err := db.Table(e.ParentTable).Where(e.ParentKeyFilter).Pluck(e.ParentKeyColumn, &keys).Error; err != nil {
		return nil, 0, fmt.Errorf("pluck %s.%s: %w", e.ParentTable, e.ParentKeyColumn, err)
	}
	valid := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		valid[k] = struct{}{}
	}

	var children []childScan[K]
	sel := fmt.Sprintf("id, %s AS doc_number, %s AS child_key", e.ChildNumberExpr, e.ChildKeyColumn)
	if err := db.Table(e.ChildTable).Select(sel).Where(e.ChildKeyFilter).Order("id ASC").Find(&children).Error; err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", e.ChildTable, err)
	}

	var orphans []OrphanSummary
	for _, c := range children {
		if _, ok := valid[c.Key]; ok {
			continue
		}
		orphans = append(orphans, OrphanSummary{
			Id:        c.ID,
			Number:    c.Number,
			ParentKey: fmt.Sprint(c.Key),
		})
	}
	return orphans, len(children), nil
}

func buildCheck(name string, orphans []OrphanSummary, scanned int) CascadeCheck {
	check := CascadeCheck{
		Name:    name,
		Healthy: len(orphans) == 0,
		Scanned: scanned,
		Count:   len(orphans),
		Preview: orphans,
	}
	if len(orphans) > previewLimit {
		check.Preview = orphans[:previewLimit]
		check.TruncatedCount = len(orphans) - previewLimit
	}
	if check.Preview == nil {
		check.Preview = []OrphanSummary{}
	}
	return check
}

// RunCascadeAudit performs the read-only cross-collection integrity checks:
// orphaned children on the four cascade edges, requisitions claiming a PO
// that does not exist, PO status versus the aggregate state of its child
// requisitions, and dangling secondary links. No record is ever mutated.
func RunCascadeAudit(db *gorm.DB, logger *logrus.Logger, runId string) (*CascadeAuditReport, error) {
	report := &CascadeAuditReport{
		RunId:       runId,
		GeneratedAt: time.Now().UTC(),
	}

	for _, edge := range []orphanEdge{shipmentPrEdge(), grnPoEdge(), invoiceGrnEdge(), prPoEdge()} {
		orphans, scanned, err := findOrphans[string](db, edge)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, buildCheck(edge.Name, orphans, scanned))
	}

	claimed, scanned, err := findClaimedButMissingPos(db)
	if err != nil {
		return nil, err
	}
	report.Checks = append(report.Checks, buildCheck("claimedButMissingPurchaseOrders", claimed, scanned))

	mismatched, scanned, err := findPoAggregateMismatches(db)
	if err != nil {
		return nil, err
	}
	report.Checks = append(report.Checks, buildCheck("poStatusVsChildRequisitions", mismatched, scanned))

	for _, edge := range secondaryLinkEdges() {
		orphans, scanned, err := findOrphans[int](db, edge)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, buildCheck(edge.Name, orphans, scanned))
	}

	for _, c := range report.Checks {
		report.TotalFindings += c.Count
		logger.WithFields(logrus.Fields{
			"check":   c.Name,
			"scanned": c.Scanned,
			"count":   c.Count,
			"healthy": c.Healthy,
		}).Info("cascade integrity check")
	}
	return report, nil
}

func secondaryLinkEdges() []orphanEdge {
	return []orphanEdge{
		{
			Name:            "danglingProductVendorVendors",
			ChildTable:      "product_vendors",
			ChildNumberExpr: "''",
			ChildKeyColumn:  "vendor_id",
			ChildKeyFilter:  "vendor_id > 0",
			ParentTable:     "vendors",
			ParentKeyColumn: "id",
			ParentKeyFilter: "id > 0",
		},
		{
			Name:            "danglingProductVendorProducts",
			ChildTable:      "product_vendors",
			ChildNumberExpr: "''",
			ChildKeyColumn:  "product_id",
			ChildKeyFilter:  "product_id > 0",
			ParentTable:     "products",
			ParentKeyColumn: "id",
			ParentKeyFilter: "id > 0",
		},
		{
			Name:            "danglingVendorInventoryVendors",
			ChildTable:      "vendor_inventories",
			ChildNumberExpr: "''",
			ChildKeyColumn:  "vendor_id",
			ChildKeyFilter:  "vendor_id > 0",
			ParentTable:     "vendors",
			ParentKeyColumn: "id",
			ParentKeyFilter: "id > 0",
		},
		{
			Name:            "danglingVendorInventoryProducts",
			ChildTable:      "vendor_inventories",
			ChildNumberExpr: "''",
			ChildKeyColumn:  "product_id",
			ChildKeyFilter:  "product_id > 0",
			ParentTable:     "products",
			ParentKeyColumn: "id",
			ParentKeyFilter: "id > 0",
		},
	}
}

// findClaimedButMissingPos flags requisitions whose unified status declares
// a linked PO while zero matching purchase orders exist.
func findClaimedButMissingPos(db *gorm.DB) ([]OrphanSummary, int, error) {
	var poNumbers []string
	if err := db.Table("purchase_orders").Where("po_number <> ''").Pluck("po_number", &poNumbers).Error; err != nil {
		return nil, 0, err
	}
	existing := make(map[string]struct{}, len(poNumbers))
	for _, n := range poNumbers {
		existing[n] = struct{}{}
	}

	type prScan struct {
		ID       int     `gorm:"column:id"`
		PrNumber string  `gorm:"column:pr_number"`
		PoNumber *string `gorm:"column:po_number"`
	}
	var prs []prScan
	if err := db.Table("orders").
		Select("id, pr_number, po_number").
		Where("unified_pr_status = ?", string(models.PrUnifiedStatusLinkedToPo)).
		Order("id ASC").
		Find(&prs).Error; err != nil {
		return nil, 0, err
	}

	var findings []OrphanSummary
	for _, pr := range prs {
		poNumber := ""
		if pr.PoNumber != nil {
			poNumber = *pr.PoNumber
		}
		if poNumber != "" {
			if _, ok := existing[poNumber]; ok {
				continue
			}
		}
		findings = append(findings, OrphanSummary{
			Id:        pr.ID,
			Number:    pr.PrNumber,
			ParentKey: poNumber,
		})
	}
	return findings, len(prs), nil
}

// findPoAggregateMismatches compares each PO's status to the aggregate
// state of its child requisitions. Exactly two aggregation rules exist:
// all children delivered means the PO should be COMPLETED, and any child
// shipped means the PO should have left its pre-delivery states. No other
// predicate is applied.
func findPoAggregateMismatches(db *gorm.DB) ([]OrphanSummary, int, error) {
	type poScan struct {
		ID       int     `gorm:"column:id"`
		PoNumber string  `gorm:"column:po_number"`
		Status   string  `gorm:"column:po_status"`
		Unified  *string `gorm:"column:unified_po_status"`
	}
	var pos []poScan
	if err := db.Table("purchase_orders").
		Select("id, po_number, po_status, unified_po_status").
		Where("po_number <> ''").
		Order("id ASC").
		Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	type prScan struct {
		PoNumber string  `gorm:"column:po_number"`
		Unified  *string `gorm:"column:unified_pr_status"`
	}
	var prs []prScan
	if err := db.Table("orders").
		Select("po_number, unified_pr_status").
		Where("pr_number IS NOT NULL AND pr_number <> '' AND po_number IS NOT NULL AND po_number <> ''").
		Find(&prs).Error; err != nil {
		return nil, 0, err
	}
	childrenByPo := make(map[string][]string)
	for _, pr := range prs {
		unified := ""
		if pr.Unified != nil {
			unified = *pr.Unified
		}
		childrenByPo[pr.PoNumber] = append(childrenByPo[pr.PoNumber], unified)
	}

	var findings []OrphanSummary
	for _, po := range pos {
		children := childrenByPo[po.PoNumber]
		if len(children) == 0 {
			continue
		}

		poUnified := ""
		if po.Unified != nil {
			poUnified = *po.Unified
		}
		if poUnified == "" {
			// Fall back to the mapped legacy value; an unmapped legacy
			// status cannot be judged and is the repairer's problem.
			mapped, ok := models.MapPoStatus(po.Status)
			if !ok {
				continue
			}
			poUnified = string(mapped)
		}

		allDelivered := true
		anyShipped := false
		for _, c := range children {
			if c != string(models.PrUnifiedStatusDelivered) {
				allDelivered = false
			}
			if c == string(models.PrUnifiedStatusShipped) {
				anyShipped = true
			}
		}

		if allDelivered && poUnified != string(models.PoUnifiedStatusCompleted) {
			findings = append(findings, OrphanSummary{
				Id:        po.ID,
				Number:    po.PoNumber,
				ParentKey: fmt.Sprintf("all %d requisitions delivered but PO is %s", len(children), poUnified),
			})
			continue
		}
		preDelivery := poUnified == string(models.PoUnifiedStatusDraft) ||
			poUnified == string(models.PoUnifiedStatusSentToVendor) ||
			poUnified == string(models.PoUnifiedStatusAcknowledged)
		if anyShipped && preDelivery {
			findings = append(findings, OrphanSummary{
				Id:        po.ID,
				Number:    po.PoNumber,
				ParentKey: fmt.Sprintf("a requisition is shipped but PO is still %s", poUnified),
			})
		}
	}
	return findings, len(pos), nil
}
