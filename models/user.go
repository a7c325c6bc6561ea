package models

import (
	"time"
)

// User is a back-office account. There is no registration endpoint:
// accounts are created by the seed step and only consumed by login.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Name      string    `json:"nombre" gorm:"not null;size:100"`
	Role      string    `json:"rol" gorm:"not null;size:20;default:'ADMIN'"`
	Active    bool      `json:"activo" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
