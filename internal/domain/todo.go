package domain

import "time"

type Todo struct {
	ID             uint      `gorm:"primaryKey"`
	Title          string    `gorm:"size:200;not null"`
	Content        string    `gorm:"type:text;not null;default:''"`
	Completed      bool      `gorm:"not null;default:false;index"`
	OrganizationID uint      `gorm:"not null;index"`
	CreatedBy      uint      `gorm:"not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

type TodoWithAuthor struct {
	Todo
	CreatedByUsername string
}
