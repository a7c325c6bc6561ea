package models

import (
	"time"
)

type Vehicle struct {
	ID           string        `json:"id" gorm:"primaryKey;size:191"`
	Brand        string        `json:"marca" gorm:"not null;size:100;index"`
	Model        string        `json:"modelo" gorm:"not null;size:100"`
	Year         int           `json:"anio" gorm:"not null"`
	Price        float64       `json:"precio" gorm:"not null;type:decimal(12,2)"`
	Mileage      int           `json:"kilometraje" gorm:"not null;default:0"`
	Fuel         FuelType      `json:"combustible" gorm:"not null;size:20"`
	Transmission Transmission  `json:"transmision" gorm:"not null;size:20"`
	Color        string        `json:"color" gorm:"not null;size:50"`
	Doors        int           `json:"puertas" gorm:"not null"`
	Engine       *string       `json:"motor" gorm:"size:100"`
	Description  *string       `json:"descripcion" gorm:"type:text"`
	Status       VehicleStatus `json:"estado" gorm:"not null;size:20;default:'DISPONIBLE';index"`
	Featured     bool          `json:"destacado" gorm:"default:false"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Relationships
	Images    []Image   `json:"imagenes" gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
	Features  []Feature `json:"caracteristicas" gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
	Inquiries []Inquiry `json:"consultas,omitempty" gorm:"foreignKey:VehicleID"`
}

// Image is a hosted photo of a vehicle. PublicID is the hosting
// provider's identifier, captured at upload time so deletion never has
// to re-derive it from the URL.
type Image struct {
	ID        string `json:"id" gorm:"primaryKey;size:191"`
	URL       string `json:"url" gorm:"not null;size:500"`
	PublicID  string `json:"publicId,omitempty" gorm:"size:255"`
	Position  int    `json:"orden" gorm:"column:orden;not null;default:0"`
	VehicleID string `json:"vehiculoId" gorm:"not null;size:191;index"`
}

type Feature struct {
	ID        string `json:"id" gorm:"primaryKey;size:191"`
	Name      string `json:"nombre" gorm:"not null;size:100"`
	VehicleID string `json:"vehiculoId" gorm:"not null;size:191;index"`
}

// Normalize makes sure nested collections serialize as [] instead of
// null for freshly created records.
func (v *Vehicle) Normalize() {
	if v.Images == nil {
		v.Images = []Image{}
	}
	if v.Features == nil {
		v.Features = []Feature{}
	}
}

// VehicleSummary is the shallow projection embedded in inquiry listings.
type VehicleSummary struct {
	ID    string  `json:"id"`
	Brand string  `json:"marca"`
	Model string  `json:"modelo"`
	Year  int     `json:"anio"`
	Price float64 `json:"precio"`
}

func (v *Vehicle) Summary() *VehicleSummary {
	if v == nil {
		return nil
	}
	return &VehicleSummary{
		ID:    v.ID,
		Brand: v.Brand,
		Model: v.Model,
		Year:  v.Year,
		Price: v.Price,
	}
}
