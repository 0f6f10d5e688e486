package domain

import "time"

// Organization is a tenant. Users, notes and todos reference it through
// their OrganizationID column.
type Organization struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
