package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder aggregates one or more purchase requisitions sent to a
// vendor. Child PRs reference it by po_number (denormalized, unenforced).
type PurchaseOrder struct {
	ID          int             `gorm:"primary_key" json:"id"`
	PoNumber    string          `gorm:"size:50;uniqueIndex;not null" json:"po_number"`
	CompanyId   string          `gorm:"size:36;index;not null" json:"companyId"`
	VendorId    *int            `gorm:"index" json:"vendorId"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4)" json:"totalAmount"`

	PoStatus                 string           `gorm:"size:100" json:"po_status"`
	UnifiedPoStatus          *PoUnifiedStatus `gorm:"size:50;index" json:"unified_po_status"`
	UnifiedPoStatusUpdatedAt *time.Time       `json:"unified_po_status_updated_at"`
	UnifiedPoStatusUpdatedBy *string          `gorm:"size:100" json:"unified_po_status_updated_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
