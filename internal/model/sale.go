package model

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatusCompleted is the only status this flow produces; sales are
// immutable after creation.
const SaleStatusCompleted = "completed"

// Sale is a completed checkout: one customer, its line items and a total.
type Sale struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   Customer  `json:"customer"`

	// Inferred from the purchased products; nil when none of them carries a
	// client type.
	ClientTypeID *uuid.UUID  `gorm:"type:uuid;index" json:"client_type_id,omitempty"`
	ClientType   *ClientType `json:"client_type,omitempty"`

	Total  float64   `gorm:"type:decimal(12,2);not null" json:"total"`
	Status string    `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	Date   time.Time `gorm:"not null" json:"date"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// SaleItem is one line of a sale. Price is the unit price captured at sale
// time, decoupled from the product's current price.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Size      *string   `gorm:"type:varchar(20)" json:"size,omitempty"`
}

// CheckoutItem is one requested cart line. Quantity and Price tolerate both
// string and numeric JSON values, as the storefront sends either.
type CheckoutItem struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Quantity  FlexInt   `json:"quantity" validate:"required,gt=0"`
	Price     FlexFloat `json:"price" validate:"gte=0"`
	Size      *string   `json:"size,omitempty"`
}

// CheckoutRequest is the checkout payload. Either CustomerID or the
// name+email pair must be present.
type CheckoutRequest struct {
	CustomerID      *uuid.UUID     `json:"customerId,omitempty"`
	CustomerName    string         `json:"customerName,omitempty"`
	CustomerEmail   string         `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone   string         `json:"customerPhone,omitempty"`
	CustomerAddress string         `json:"customerAddress,omitempty"`
	Items           []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	Total           FlexFloat      `json:"total" validate:"gt=0"`
	Date            string         `json:"date,omitempty"`
}
