package models

import "time"

// Product carries both storefront fields and the supplier/tax columns
// imported from the external catalog feed. ItemCode is mandatory and is
// generated when the feed omits it.
type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	Price          float64   `json:"price"`
	OriginalPrice  float64   `json:"original_price"`
	CategoryID     uint      `gorm:"not null;index" json:"category_id"`
	Category       *Category `json:"category,omitempty"`
	AvailableStock int       `json:"available_stock"`
	StockQuantity  int       `json:"stock_quantity"`
	Rating         float64   `json:"rating"`
	ReviewsCount   int       `json:"reviews_count"`
	TaxPercent     float64   `json:"tax_percent"`
	IsFeatured     bool      `gorm:"default:false" json:"is_featured"`
	IsBestseller   bool      `gorm:"default:false" json:"is_bestseller"`
	IsPipe         bool      `gorm:"default:false" json:"is_pipe"`

	// Catalog feed fields.
	ItemCode   string  `gorm:"uniqueIndex;not null" json:"item_code"`
	BrandGroup string  `json:"brand_group"`
	SDP        float64 `json:"sdp"`
	NRP        float64 `json:"nrp"`
	MRP        float64 `json:"mrp"`
	HSN        string  `json:"hsn"`
	SGST       float64 `json:"sgst"`
	CGST       float64 `json:"cgst"`
	IGST       float64 `json:"igst"`
	Cess       float64 `json:"cess"`

	Images []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxInclusivePrice returns the unit price with tax applied.
func (p *Product) TaxInclusivePrice() float64 {
	return p.Price + p.Price*p.TaxPercent/100
}

type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	AltText   string    `json:"alt_text"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductFilter narrows product listings. Nil booleans mean "no filter".
type ProductFilter struct {
	CategoryID   uint
	Search       string
	IsFeatured   *bool
	IsBestseller *bool
	IsPipe       *bool
	SortBy       string
	SortOrder    string
}

// ProductInput is the create/update request body for products. Pointer
// fields distinguish "absent" from zero values on update.
type ProductInput struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	ImageURL       *string  `json:"image_url"`
	Price          *float64 `json:"price"`
	OriginalPrice  *float64 `json:"original_price"`
	CategoryID     *uint    `json:"category_id"`
	AvailableStock *int     `json:"available_stock"`
	StockQuantity  *int     `json:"stock_quantity"`
	Rating         *float64 `json:"rating"`
	ReviewsCount   *int     `json:"reviews_count"`
	TaxPercent     *float64 `json:"tax_percent"`
	IsFeatured     *bool    `json:"is_featured"`
	IsBestseller   *bool    `json:"is_bestseller"`
	IsPipe         *bool    `json:"is_pipe"`
	ItemCode       *string  `json:"item_code"`
	BrandGroup     *string  `json:"brand_group"`
	SDP            *float64 `json:"sdp"`
	NRP            *float64 `json:"nrp"`
	MRP            *float64 `json:"mrp"`
	HSN            *string  `json:"hsn"`
	SGST           *float64 `json:"sgst"`
	CGST           *float64 `json:"cgst"`
	IGST           *float64 `json:"igst"`
	Cess           *float64 `json:"cess"`
	Images         []string `json:"images"`
	ImageURLs      []string `json:"image_urls"`
}
