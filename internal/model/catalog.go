package model

// Variant is read-only reference data owned by the catalog.
type Variant struct {
	SKU               string     `gorm:"primaryKey;size:64;not null" json:"sku"`
	UnitPrice         float64    `gorm:"not null" json:"unit_price"`
	Title             string     `gorm:"size:256" json:"title"`
	ImageURL          string     `gorm:"size:512" json:"image_url"`
	ComparedPrice     float64    `json:"compared_price,omitempty"`
	Properties        []Property `gorm:"serializer:json" json:"properties,omitempty"`
	DiscountValue     float64    `json:"discount_value,omitempty"`
	InventoryQuantity int        `json:"inventory_quantity"`
	Available         bool       `json:"available"`
}
