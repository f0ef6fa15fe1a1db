package query

import (
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

// At most this many reactions are embedded per comment; the full count
// is reported separately as totalReactions.
const maxEmbeddedReactions = 10

type ReactionItem struct {
	ID       uint   `json:"id"`
	Reaction string `json:"reaction"`
	UserID   uint   `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type CommentItem struct {
	ID             uint            `json:"id"`
	TaskID         uint            `json:"taskId"`
	Comment        string          `json:"comment"`
	IsEdited       bool            `json:"isEdited"`
	CreatedAt      time.Time       `json:"createdAt"`
	User           AssigneeSummary `json:"user"`
	Reactions      []ReactionItem  `json:"reactions"`
	TotalReactions int64           `json:"totalReactions"`
}

// ListComments pages a task's comments newest first. Each comment is
// enriched with its author, the first reactions (capped), and the total
// reaction count, which can exceed the embedded list.
func ListComments(dbc *gorm.DB, taskID uint, limit, offset int) ([]CommentItem, int64, error) {
	opts := Options{Limit: limit, Offset: offset}.normalized()

	var total int64
	if err := dbc.Model(&models.Comment{}).Where("task_id = ?", taskID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	if err := dbc.Where("task_id = ?", taskID).
		Preload("User").
		Order("created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	items := make([]CommentItem, 0, len(comments))

	for _, comment := range comments {
		reactions, totalReactions, err := embeddedReactions(dbc, comment.ID)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, CommentItem{
			ID:        comment.ID,
			TaskID:    comment.TaskID,
			Comment:   comment.Body,
			IsEdited:  comment.IsEdited,
			CreatedAt: comment.CreatedAt,
			User: AssigneeSummary{
				ID:    comment.User.ID,
				Name:  comment.User.Name,
				Email: comment.User.Email,
			},
			Reactions:      reactions,
			TotalReactions: totalReactions,
		})
	}

	return items, total, nil
}

func embeddedReactions(dbc *gorm.DB, commentID uint) ([]ReactionItem, int64, error) {
	var total int64
	if err := dbc.Model(&models.CommentReaction{}).Where("comment_id = ?", commentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items, err := reactionItems(dbc, commentID, maxEmbeddedReactions, 0)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListReactions pages a comment's reactions with reactor display fields
// resolved.
func ListReactions(dbc *gorm.DB, commentID uint, limit, offset int) ([]ReactionItem, int64, error) {
	opts := Options{Limit: limit, Offset: offset}.normalized()

	var total int64
	if err := dbc.Model(&models.CommentReaction{}).Where("comment_id = ?", commentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items, err := reactionItems(dbc, commentID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func reactionItems(dbc *gorm.DB, commentID uint, limit, offset int) ([]ReactionItem, error) {
	var reactions []models.CommentReaction

	if err := dbc.Where("comment_id = ?", commentID).
		Preload("User").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&reactions).Error; err != nil {
		return nil, err
	}

	items := make([]ReactionItem, 0, len(reactions))
	for _, reaction := range reactions {
		items = append(items, ReactionItem{
			ID:       reaction.ID,
			Reaction: reaction.Reaction,
			UserID:   reaction.UserID,
			Name:     reaction.User.Name,
			Email:    reaction.User.Email,
		})
	}

	return items, nil
}
