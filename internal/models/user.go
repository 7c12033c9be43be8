package models

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Role         string `gorm:"not null" json:"role"` // "Admin", "Project Manager", "Team Member"
	PasswordHash string `gorm:"not null" json:"-"`
}
