package models

import "gorm.io/gorm"

// CommentReaction holds at most one reaction per (comment, user) pair.
// Re-submitting the same reaction toggles it off; a different reaction
// overwrites it in place.
type CommentReaction struct {
	gorm.Model

	CommentID uint   `gorm:"not null;uniqueIndex:idx_reaction_comment_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reaction_comment_user"`
	Reaction  string `gorm:"not null"`

	// Relationships
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
