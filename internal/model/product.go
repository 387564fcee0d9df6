package model

import "github.com/google/uuid"

// Product is a sellable item. Stock is the single counter concurrent
// checkouts contend over and must never go negative.
type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description *string `gorm:"type:varchar(500)" json:"description,omitempty"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price" validate:"gte=0"`
	Stock       int     `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Image       *string `gorm:"type:varchar(500)" json:"image,omitempty"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `json:"category,omitempty"`

	ClientTypeID *uuid.UUID  `gorm:"type:uuid;index" json:"client_type_id,omitempty"`
	ClientType   *ClientType `json:"client_type,omitempty"`

	Sizes []Size `gorm:"many2many:product_sizes" json:"sizes,omitempty"`

	SaleItems []SaleItem `gorm:"foreignKey:ProductID" json:"-"`
}

// SizeNames flattens the size association into plain labels, the shape the
// storefront consumes.
func (p *Product) SizeNames() []string {
	names := make([]string, len(p.Sizes))
	for i, s := range p.Sizes {
		names[i] = s.Name
	}
	return names
}
