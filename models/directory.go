package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Directory collections. The migration engine never mutates these; they are
// the parents the relationship-graph and dangling-link checks resolve
// against.

type Company struct {
	ID        string    `gorm:"primary_key;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Vendor struct {
	ID        int       `gorm:"primary_key" json:"id"`
	CompanyId string    `gorm:"size:36;index" json:"companyId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Employee struct {
	ID        int       `gorm:"primary_key" json:"id"`
	CompanyId string    `gorm:"size:36;index" json:"companyId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Product struct {
	ID        int       `gorm:"primary_key" json:"id"`
	CompanyId string    `gorm:"size:36;index" json:"companyId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Sku       string    `gorm:"size:100;index" json:"sku"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// ProductVendor links a product to a vendor that supplies it. Rows survive
// vendor/product deletion (no cascade in the store), which is exactly what
// the dangling-link check looks for.
type ProductVendor struct {
	ID        int `gorm:"primary_key" json:"id"`
	ProductId int `gorm:"index;not null" json:"productId"`
	VendorId  int `gorm:"index;not null" json:"vendorId"`
}

// VendorInventory tracks vendor-held stock per product.
type VendorInventory struct {
	ID        int             `gorm:"primary_key" json:"id"`
	VendorId  int             `gorm:"index;not null" json:"vendorId"`
	ProductId int             `gorm:"index;not null" json:"productId"`
	Qty       decimal.Decimal `gorm:"type:decimal(20,4)" json:"qty"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
