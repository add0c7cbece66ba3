package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceiptNote records goods received against a purchase order.
// po_number points at purchase_orders.po_number.
type GoodsReceiptNote struct {
	ID            int             `gorm:"primary_key" json:"id"`
	GrnNumber     string          `gorm:"size:50;uniqueIndex;not null" json:"grnId"`
	CompanyId     string          `gorm:"size:36;index;not null" json:"companyId"`
	PoNumber      string          `gorm:"size:50;index" json:"poNumber"`
	ReceivedDate  *time.Time      `json:"receivedDate"`
	ReceivedValue decimal.Decimal `gorm:"type:decimal(20,4)" json:"receivedValue"`

	GrnStatus                 string            `gorm:"size:100" json:"grnStatus"`
	UnifiedGrnStatus          *GrnUnifiedStatus `gorm:"size:50;index" json:"unified_grn_status"`
	UnifiedGrnStatusUpdatedAt *time.Time        `json:"unified_grn_status_updated_at"`
	UnifiedGrnStatusUpdatedBy *string           `gorm:"size:100" json:"unified_grn_status_updated_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
