package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectMember struct {
	gorm.Model

	UserID    uint      `gorm:"not null;uniqueIndex:idx_member_user_project"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_member_user_project"`
	Role      string    `gorm:"not null;default:developer"` // "owner", "manager", "developer", "designer", "tester"
	JoinedAt  time.Time `gorm:"autoCreateTime"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
