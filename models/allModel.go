package models

import "gorm.io/gorm"

// AutoMigrateAll registers every collection the migration engine touches.
// The host application owns the live schema; batch tools call this only for
// fresh environments and tests.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&Company{},
		&Vendor{},
		&Employee{},
		&Product{},
		&ProductVendor{},
		&VendorInventory{},
		&Order{},
		&PurchaseOrder{},
		&Shipment{},
		&GoodsReceiptNote{},
		&Invoice{},
		&MigrationLog{},
	)
}
