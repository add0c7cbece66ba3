package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the vendor invoice raised against a GRN. grn_number points at
// goods_receipt_notes.grn_number.
type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceNumber string          `gorm:"size:50;uniqueIndex;not null" json:"invoiceNumber"`
	CompanyId     string          `gorm:"size:36;index;not null" json:"companyId"`
	GrnNumber     string          `gorm:"size:50;index" json:"grnId"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4)" json:"totalAmount"`
	DueDate       *time.Time      `json:"dueDate"`

	InvoiceStatus                 string                `gorm:"size:100" json:"invoiceStatus"`
	UnifiedInvoiceStatus          *InvoiceUnifiedStatus `gorm:"size:50;index" json:"unified_invoice_status"`
	UnifiedInvoiceStatusUpdatedAt *time.Time            `json:"unified_invoice_status_updated_at"`
	UnifiedInvoiceStatusUpdatedBy *string               `gorm:"size:100" json:"unified_invoice_status_updated_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
