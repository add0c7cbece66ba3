package workflow

import (
	"github.com/uniformhub/uniforms_backend/models"
)

// statusTarget describes one legacy/unified field pair: which table it
// lives on, the columns involved, and the mapping table that translates
// between them. The coverage auditor, repairer, sync-health scorer and
// legacy-dependence scorer all iterate this one list, so adding an entity
// to the migration means adding one row here.
//
// PurchaseRequisition is a scoped view over the orders table (rows with a
// pr_number), carrying the second field pair those rows hold.
type statusTarget struct {
	Entity        models.EntityType
	Table         string
	NumberColumn  string
	LegacyColumn  string
	UnifiedColumn string
	// Scope is an extra WHERE fragment restricting the target to the rows
	// that carry this field pair. Empty means the whole table.
	Scope string
	MapFn func(string) (string, bool)
}

func statusTargets() []statusTarget {
	return []statusTarget{
		{
			Entity:        models.EntityTypeOrder,
			Table:         "orders",
			NumberColumn:  "order_number",
			LegacyColumn:  "status",
			UnifiedColumn: "unified_status",
			MapFn:         func(s string) (string, bool) { v, ok := models.MapOrderStatus(s); return string(v), ok },
		},
		{
			Entity:        models.EntityTypePurchaseRequisition,
			Table:         "orders",
			NumberColumn:  "pr_number",
			LegacyColumn:  "pr_status",
			UnifiedColumn: "unified_pr_status",
			Scope:         "pr_number IS NOT NULL AND pr_number <> ''",
			MapFn:         func(s string) (string, bool) { v, ok := models.MapPrStatus(s); return string(v), ok },
		},
		{
			Entity:        models.EntityTypePurchaseOrder,
			Table:         "purchase_orders",
			NumberColumn:  "po_number",
			LegacyColumn:  "po_status",
			UnifiedColumn: "unified_po_status",
			MapFn:         func(s string) (string, bool) { v, ok := models.MapPoStatus(s); return string(v), ok },
		},
		{
			Entity:        models.EntityTypeShipment,
			Table:         "shipments",
			NumberColumn:  "shipment_number",
			LegacyColumn:  "shipment_status",
			UnifiedColumn: "unified_shipment_status",
			MapFn:         func(s string) (string, bool) { v, ok := models.MapShipmentStatus(s); return string(v), ok },
		},
		{
			Entity:        models.EntityTypeGoodsReceiptNote,
			Table:         "goods_receipt_notes",
			NumberColumn:  "grn_number",
			LegacyColumn:  "grn_status",
			UnifiedColumn: "unified_grn_status",
			MapFn:         func(s string) (string, bool) { v, ok := models.MapGrnStatus(s); return string(v), ok },
		},
		{
			Entity:        models.EntityTypeInvoice,
			Table:         "invoices",
			NumberColumn:  "invoice_number",
			LegacyColumn:  "invoice_status",
			UnifiedColumn: "unified_invoice_status",
			MapFn:         func(s string) (string, bool) { v, ok := models.MapInvoiceStatus(s); return string(v), ok },
		},
	}
}
