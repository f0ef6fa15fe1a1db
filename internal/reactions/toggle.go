// Package reactions implements the single-slot reaction rule: one
// reaction row per (comment, user) pair.
package reactions

import (
	"errors"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Toggle applies one reaction request and reports what happened: no
// existing row inserts ("added"), the same reaction again deletes it
// ("deleted"), a different reaction overwrites in place ("updated").
func Toggle(dbc *gorm.DB, commentID, userID uint, reaction string) (string, error) {
	var existing models.CommentReaction

	err := dbc.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}

		row := models.CommentReaction{
			CommentID: commentID,
			UserID:    userID,
			Reaction:  reaction,
		}

		if err := dbc.Create(&row).Error; err != nil {
			return "", err
		}

		return ActionAdded, nil
	}

	if existing.Reaction == reaction {
		if err := dbc.Unscoped().Delete(&existing).Error; err != nil {
			return "", err
		}
		return ActionDeleted, nil
	}

	if err := dbc.Model(&existing).Update("reaction", reaction).Error; err != nil {
		return "", err
	}

	return ActionUpdated, nil
}
