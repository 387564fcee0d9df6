package model

import "github.com/google/uuid"

// Customer is a buyer record. It is created either explicitly from the
// dashboard or implicitly during checkout, and is shared across sales.
type Customer struct {
	BaseModel
	Name    string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email   *string `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address *string `gorm:"type:varchar(255)" json:"address,omitempty"`

	// Optional link to the user account owning this customer record.
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	// Optional demographic classification.
	ClientTypeID *uuid.UUID  `gorm:"type:uuid;index" json:"client_type_id,omitempty"`
	ClientType   *ClientType `json:"client_type,omitempty"`

	Sales []Sale `gorm:"foreignKey:CustomerID" json:"sales,omitempty"`
}
