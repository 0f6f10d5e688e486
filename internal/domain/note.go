package domain

import "time"

type Note struct {
	ID             uint      `gorm:"primaryKey"`
	Title          string    `gorm:"size:200;not null"`
	Content        string    `gorm:"type:text;not null"`
	OrganizationID uint      `gorm:"not null;index"`
	CreatedBy      uint      `gorm:"not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// NoteWithAuthor is a note joined with the username of its creator.
type NoteWithAuthor struct {
	Note
	CreatedByUsername string
}
