package models

import "time"

// Shipment is a vendor despatch against a purchase requisition. pr_number
// points at orders.pr_number; shipments created before the PR linkage was
// enforced in the UI can reference PRs that no longer exist.
type Shipment struct {
	ID             int    `gorm:"primary_key" json:"id"`
	ShipmentNumber string `gorm:"size:50;uniqueIndex;not null" json:"shipmentId"`
	CompanyId      string `gorm:"size:36;index;not null" json:"companyId"`
	PrNumber       string `gorm:"size:50;index" json:"prNumber"`
	Carrier        string `gorm:"size:100" json:"carrier"`
	TrackingNumber string `gorm:"size:100" json:"trackingNumber"`

	ShipmentStatus                 string                 `gorm:"size:100" json:"shipmentStatus"`
	UnifiedShipmentStatus          *ShipmentUnifiedStatus `gorm:"size:50;index" json:"unified_shipment_status"`
	UnifiedShipmentStatusUpdatedAt *time.Time             `json:"unified_shipment_status_updated_at"`
	UnifiedShipmentStatusUpdatedBy *string                `gorm:"size:100" json:"unified_shipment_status_updated_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
