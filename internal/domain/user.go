package domain

import "time"

// User is a member of exactly one organization.
type User struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"size:255;not null"`
	Role           Role      `gorm:"type:varchar(10);not null"`
	OrganizationID uint      `gorm:"not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
