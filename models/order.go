package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a uniform order raised by an employee. A row doubles as a
// PurchaseRequisition once pr_number is assigned: the PR carries its own
// legacy/unified status pair on the same row, so the orders table holds two
// field pairs for migration purposes.
//
// status and pr_status are the legacy free-form strings still written by
// every existing CRUD path. The unified_* columns are absent (NULL) until
// backfilled by the repairer or written by dual-write-enabled paths.
// employee_id, vendor_id, po_number and po_id are denormalized references
// with no store-side integrity; the cascade auditor measures how far they
// have drifted.
type Order struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OrderNumber string          `gorm:"size:50;uniqueIndex;not null" json:"orderNumber"`
	CompanyId   string          `gorm:"size:36;index;not null" json:"companyId"`
	EmployeeId  *int            `gorm:"index" json:"employeeId"`
	VendorId    *int            `gorm:"index" json:"vendorId"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4)" json:"totalAmount"`

	Status                 string              `gorm:"size:100" json:"status"`
	UnifiedStatus          *OrderUnifiedStatus `gorm:"size:50;index" json:"unified_status"`
	UnifiedStatusUpdatedAt *time.Time          `json:"unified_status_updated_at"`
	UnifiedStatusUpdatedBy *string             `gorm:"size:100" json:"unified_status_updated_by"`

	// Purchase requisition specialization.
	PrNumber                 *string          `gorm:"size:50;index" json:"prNumber"`
	PrStatus                 *string          `gorm:"size:100" json:"pr_status"`
	UnifiedPrStatus          *PrUnifiedStatus `gorm:"size:50;index" json:"unified_pr_status"`
	UnifiedPrStatusUpdatedAt *time.Time       `json:"unified_pr_status_updated_at"`
	UnifiedPrStatusUpdatedBy *string          `gorm:"size:100" json:"unified_pr_status_updated_by"`
	PoNumber                 *string          `gorm:"size:50;index" json:"po_number"`
	PoId                     *int             `gorm:"index" json:"po_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsPurchaseRequisition reports whether the row carries the PR
// specialization, and therefore the second status field pair.
func (o *Order) IsPurchaseRequisition() bool {
	return o.PrNumber != nil && *o.PrNumber != ""
}
