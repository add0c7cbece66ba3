package models

import "strings"

// Legacy-to-unified status mapping tables.
//
// The legacy fields are free-form strings accumulated over years of UI code;
// every spelling that ever reached production is listed here explicitly.
// Mappings are many-to-one (several legacy spellings collapse into one
// unified value) and never one-to-many. A legacy value missing from its
// table returns ok=false, which callers must treat as "cannot safely infer"
// — never as a default. Matching trims surrounding whitespace but does not
// case-fold: distinct casings are distinct vocabulary entries.

func MapOrderStatus(legacy string) (OrderUnifiedStatus, bool) {
	switch strings.TrimSpace(legacy) {
	case "Draft", "draft":
		return OrderUnifiedStatusDraft, true
	case "Submitted", "Pending", "pending":
		return OrderUnifiedStatusSubmitted, true
	case "Approved", "approved":
		return OrderUnifiedStatusApproved, true
	case "Awaiting fulfilment", "awaiting_fulfilment", "Processing":
		return OrderUnifiedStatusInFulfilment, true
	case "Fulfilled", "Completed", "Complete":
		return OrderUnifiedStatusFulfilled, true
	case "Cancelled", "cancelled", "Canceled":
		return OrderUnifiedStatusCancelled, true
	case "Rejected", "Rejected - budget", "Rejected - duplicate":
		return OrderUnifiedStatusRejected, true
	}
	return "", false
}

func MapPrStatus(legacy string) (PrUnifiedStatus, bool) {
	switch strings.TrimSpace(legacy) {
	case "Pending Approval", "Pending", "pending":
		return PrUnifiedStatusPendingApproval, true
	case "Approved", "approved":
		return PrUnifiedStatusApproved, true
	case "Linked to PO", "PO Created", "po_created":
		return PrUnifiedStatusLinkedToPo, true
	case "Shipped", "In Transit":
		return PrUnifiedStatusShipped, true
	case "Delivered", "delivered":
		return PrUnifiedStatusDelivered, true
	case "Rejected", "Rejected by manager", "Rejected - budget exceeded":
		return PrUnifiedStatusRejected, true
	case "Cancelled", "cancelled":
		return PrUnifiedStatusCancelled, true
	}
	return "", false
}

func MapPoStatus(legacy string) (PoUnifiedStatus, bool) {
	switch strings.TrimSpace(legacy) {
	case "Draft", "draft":
		return PoUnifiedStatusDraft, true
	case "Sent", "Sent to Vendor", "Issued":
		return PoUnifiedStatusSentToVendor, true
	case "Acknowledged", "Accepted by Vendor":
		return PoUnifiedStatusAcknowledged, true
	case "Partial Delivery", "Partially Delivered":
		return PoUnifiedStatusPartiallyDelivered, true
	case "Completed", "Complete", "Closed":
		return PoUnifiedStatusCompleted, true
	case "Cancelled", "cancelled":
		return PoUnifiedStatusCancelled, true
	}
	return "", false
}

func MapShipmentStatus(legacy string) (ShipmentUnifiedStatus, bool) {
	switch strings.TrimSpace(legacy) {
	case "Pending", "Ready to Ship", "pending":
		return ShipmentUnifiedStatusPending, true
	case "In Transit", "Shipped", "shipped":
		return ShipmentUnifiedStatusInTransit, true
	case "Delivered", "Received", "delivered":
		return ShipmentUnifiedStatusDelivered, true
	case "Returned":
		return ShipmentUnifiedStatusReturned, true
	case "Cancelled", "cancelled":
		return ShipmentUnifiedStatusCancelled, true
	}
	return "", false
}

func MapGrnStatus(legacy string) (GrnUnifiedStatus, bool) {
	switch strings.TrimSpace(legacy) {
	case "Draft", "draft":
		return GrnUnifiedStatusDraft, true
	case "Pending QC", "Inspection", "Pending Inspection":
		return GrnUnifiedStatusPendingInspection, true
	case "Accepted", "Approved", "accepted":
		return GrnUnifiedStatusAccepted, true
	case "Partial", "Partially Accepted":
		return GrnUnifiedStatusPartiallyAccepted, true
	case "Rejected", "rejected":
		return GrnUnifiedStatusRejected, true
	}
	return "", false
}

func MapInvoiceStatus(legacy string) (InvoiceUnifiedStatus, bool) {
	switch strings.TrimSpace(legacy) {
	case "Draft", "draft":
		return InvoiceUnifiedStatusDraft, true
	case "Submitted", "Pending Approval", "submitted":
		return InvoiceUnifiedStatusSubmitted, true
	case "Approved", "Confirmed":
		return InvoiceUnifiedStatusApproved, true
	case "Partial Paid", "Partially Paid":
		return InvoiceUnifiedStatusPartiallyPaid, true
	case "Paid", "paid":
		return InvoiceUnifiedStatusPaid, true
	case "Rejected":
		return InvoiceUnifiedStatusRejected, true
	case "Void", "Cancelled", "cancelled":
		return InvoiceUnifiedStatusVoid, true
	}
	return "", false
}

// MapLegacyToUnified dispatches to the entity's mapping table and returns
// the unified value as a plain string for callers that work across entity
// types (the repairer and the sync-health scorer).
func MapLegacyToUnified(entityType EntityType, legacy string) (string, bool) {
	switch entityType {
	case EntityTypeOrder:
		v, ok := MapOrderStatus(legacy)
		return string(v), ok
	case EntityTypePurchaseRequisition:
		v, ok := MapPrStatus(legacy)
		return string(v), ok
	case EntityTypePurchaseOrder:
		v, ok := MapPoStatus(legacy)
		return string(v), ok
	case EntityTypeShipment:
		v, ok := MapShipmentStatus(legacy)
		return string(v), ok
	case EntityTypeGoodsReceiptNote:
		v, ok := MapGrnStatus(legacy)
		return string(v), ok
	case EntityTypeInvoice:
		v, ok := MapInvoiceStatus(legacy)
		return string(v), ok
	}
	return "", false
}
