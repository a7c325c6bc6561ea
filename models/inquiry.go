package models

import (
	"time"
)

// Inquiry is a customer contact request, optionally about one vehicle.
// The vehicle reference is weak: it may be null, but when present it
// must point at an existing vehicle.
type Inquiry struct {
	ID        string        `json:"id" gorm:"primaryKey;size:191"`
	Name      string        `json:"nombre" gorm:"not null;size:100"`
	Email     string        `json:"email" gorm:"not null;size:255"`
	Phone     string        `json:"telefono" gorm:"not null;size:50"`
	Message   string        `json:"mensaje" gorm:"not null;type:text"`
	Status    InquiryStatus `json:"estado" gorm:"not null;size:20;default:'PENDIENTE';index"`
	VehicleID *string       `json:"vehiculoId" gorm:"size:191;index"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Vehicle *Vehicle `json:"vehiculo,omitempty" gorm:"foreignKey:VehicleID"`
}
