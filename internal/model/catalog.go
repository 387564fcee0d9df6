package model

// Category groups products (coats, jeans, t-shirts...).
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

// Size is a catalog size label ("S", "M", "12"...). Products reference sizes
// through the product_sizes join table.
type Size struct {
	BaseModel
	Name string `gorm:"type:varchar(20);uniqueIndex;not null" json:"name" validate:"required"`
}

// ClientType is a coarse demographic label attached to products and, by
// inference, to sales.
type ClientType struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}
