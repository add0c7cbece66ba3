package models

import (
	"database/sql/driver"
	"fmt"
)

// EntityType identifies one of the six workflow-bearing collections.
// Orders and PurchaseRequisitions share the orders table: a row is a PR
// iff pr_number is populated, and the PR status pair lives on the same row.
type EntityType string

const (
	EntityTypeOrder               EntityType = "Order"
	EntityTypePurchaseRequisition EntityType = "PurchaseRequisition"
	EntityTypePurchaseOrder       EntityType = "PurchaseOrder"
	EntityTypeShipment            EntityType = "Shipment"
	EntityTypeGoodsReceiptNote    EntityType = "GoodsReceiptNote"
	EntityTypeInvoice             EntityType = "Invoice"

	// EntityTypeMigrationRun tags the MIGRATION_START / MIGRATION_COMPLETE
	// bracket entries a mutating batch run writes around its record-level
	// log entries.
	EntityTypeMigrationRun EntityType = "MigrationRun"
)

// OrderUnifiedStatus is the normalized vocabulary replacing the free-form
// orders.status field.
type OrderUnifiedStatus string

const (
	OrderUnifiedStatusDraft        OrderUnifiedStatus = "DRAFT"
	OrderUnifiedStatusSubmitted    OrderUnifiedStatus = "SUBMITTED"
	OrderUnifiedStatusApproved     OrderUnifiedStatus = "APPROVED"
	OrderUnifiedStatusInFulfilment OrderUnifiedStatus = "IN_FULFILMENT"
	OrderUnifiedStatusFulfilled    OrderUnifiedStatus = "FULFILLED"
	OrderUnifiedStatusCancelled    OrderUnifiedStatus = "CANCELLED"
	OrderUnifiedStatusRejected     OrderUnifiedStatus = "REJECTED"
)

func (s OrderUnifiedStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *OrderUnifiedStatus) Scan(value interface{}) error {
	return scanUnifiedStatus((*string)(s), value)
}

type PrUnifiedStatus string

const (
	PrUnifiedStatusPendingApproval PrUnifiedStatus = "PENDING_APPROVAL"
	PrUnifiedStatusApproved        PrUnifiedStatus = "APPROVED"
	PrUnifiedStatusLinkedToPo      PrUnifiedStatus = "LINKED_TO_PO"
	PrUnifiedStatusShipped         PrUnifiedStatus = "SHIPPED"
	PrUnifiedStatusDelivered       PrUnifiedStatus = "DELIVERED"
	PrUnifiedStatusRejected        PrUnifiedStatus = "REJECTED"
	PrUnifiedStatusCancelled       PrUnifiedStatus = "CANCELLED"
)

func (s PrUnifiedStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *PrUnifiedStatus) Scan(value interface{}) error {
	return scanUnifiedStatus((*string)(s), value)
}

type PoUnifiedStatus string

const (
	PoUnifiedStatusDraft              PoUnifiedStatus = "DRAFT"
	PoUnifiedStatusSentToVendor       PoUnifiedStatus = "SENT_TO_VENDOR"
	PoUnifiedStatusAcknowledged       PoUnifiedStatus = "ACKNOWLEDGED"
	PoUnifiedStatusPartiallyDelivered PoUnifiedStatus = "PARTIALLY_DELIVERED"
	PoUnifiedStatusCompleted          PoUnifiedStatus = "COMPLETED"
	PoUnifiedStatusCancelled          PoUnifiedStatus = "CANCELLED"
)

func (s PoUnifiedStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *PoUnifiedStatus) Scan(value interface{}) error {
	return scanUnifiedStatus((*string)(s), value)
}

type ShipmentUnifiedStatus string

const (
	ShipmentUnifiedStatusPending   ShipmentUnifiedStatus = "PENDING"
	ShipmentUnifiedStatusInTransit ShipmentUnifiedStatus = "IN_TRANSIT"
	ShipmentUnifiedStatusDelivered ShipmentUnifiedStatus = "DELIVERED"
	ShipmentUnifiedStatusReturned  ShipmentUnifiedStatus = "RETURNED"
	ShipmentUnifiedStatusCancelled ShipmentUnifiedStatus = "CANCELLED"
)

func (s ShipmentUnifiedStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *ShipmentUnifiedStatus) Scan(value interface{}) error {
	return scanUnifiedStatus((*string)(s), value)
}

type GrnUnifiedStatus string

const (
	GrnUnifiedStatusDraft             GrnUnifiedStatus = "DRAFT"
	GrnUnifiedStatusPendingInspection GrnUnifiedStatus = "PENDING_INSPECTION"
	GrnUnifiedStatusAccepted          GrnUnifiedStatus = "ACCEPTED"
	GrnUnifiedStatusPartiallyAccepted GrnUnifiedStatus = "PARTIALLY_ACCEPTED"
	GrnUnifiedStatusRejected          GrnUnifiedStatus = "REJECTED"
)

func (s GrnUnifiedStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *GrnUnifiedStatus) Scan(value interface{}) error {
	return scanUnifiedStatus((*string)(s), value)
}

type InvoiceUnifiedStatus string

const (
	InvoiceUnifiedStatusDraft         InvoiceUnifiedStatus = "DRAFT"
	InvoiceUnifiedStatusSubmitted     InvoiceUnifiedStatus = "SUBMITTED"
	InvoiceUnifiedStatusApproved      InvoiceUnifiedStatus = "APPROVED"
	InvoiceUnifiedStatusPartiallyPaid InvoiceUnifiedStatus = "PARTIALLY_PAID"
	InvoiceUnifiedStatusPaid          InvoiceUnifiedStatus = "PAID"
	InvoiceUnifiedStatusRejected      InvoiceUnifiedStatus = "REJECTED"
	InvoiceUnifiedStatusVoid          InvoiceUnifiedStatus = "VOID"
)

func (s InvoiceUnifiedStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *InvoiceUnifiedStatus) Scan(value interface{}) error {
	return scanUnifiedStatus((*string)(s), value)
}

func scanUnifiedStatus(dst *string, value interface{}) error {
	if value == nil {
		*dst = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*dst = v
	case []byte:
		*dst = string(v)
	default:
		return fmt.Errorf("unified status must be string, got %T", value)
	}
	return nil
}

// MigrationAction classifies migration log entries.
type MigrationAction string

const (
	MigrationActionStatusUpdate      MigrationAction = "STATUS_UPDATE"
	MigrationActionStatusSync        MigrationAction = "STATUS_SYNC"
	MigrationActionStatusRepair      MigrationAction = "STATUS_REPAIR"
	MigrationActionMigrationStart    MigrationAction = "MIGRATION_START"
	MigrationActionMigrationComplete MigrationAction = "MIGRATION_COMPLETE"
)
