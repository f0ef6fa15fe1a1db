package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name              string `gorm:"not null"`
	Email             string `gorm:"uniqueIndex;not null"`
	Role              string `gorm:"not null;default:member"` // "admin", "member"
	Status            string `gorm:"not null;default:active"` // "active", "inactive"
	PasswordHash      string `json:"-"`
	EncryptedPassword string `json:"-"` // reversible copy for admin-assisted recovery
	DOB               string
	Gender            string
	Avatar            string
	PhoneNumber       string

	// Relationships
	ProjectMembers []ProjectMember   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments       []Comment         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reactions      []CommentReaction `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
