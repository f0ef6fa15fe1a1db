package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	Status      string `gorm:"not null;default:active"` // "active", "completed", "hold", "archived"
	Priority    string `gorm:"not null;default:high"`   // "low", "medium", "high", "urgent"
	StartDate   string `gorm:"not null"`
	EndDate     string

	// Relationships
	Tasks          []Task          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMembers []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
