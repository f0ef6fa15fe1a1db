package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/query"
	"github.com/taskdeck-dev/taskdeck/internal/reactions"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"github.com/taskdeck-dev/taskdeck/internal/ws"
)

type AddCommentRequest struct {
	TaskID  uint   `json:"taskId" binding:"required"`
	Comment string `json:"comment" binding:"required,min=1,max=2000"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=2000"`
}

type ReactionRequest struct {
	CommentID uint   `json:"commentId" binding:"required"`
	Reaction  string `json:"reaction" binding:"required,max=16"`
}

func AddComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	var body AddCommentRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, body.TaskID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
		return
	}

	comment := models.Comment{
		TaskID: body.TaskID,
		UserID: currentUser.ID,
		Body:   body.Comment,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		logger.Error("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ws.BroadcastRefresh(task.ProjectID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "success",
		"comment": query.CommentItem{
			ID:        comment.ID,
			TaskID:    comment.TaskID,
			Comment:   comment.Body,
			CreatedAt: comment.CreatedAt,
			User: query.AssigneeSummary{
				ID:    currentUser.ID,
				Name:  currentUser.Name,
				Email: currentUser.Email,
			},
		},
	})
}

// CommentList pages a task's comments, each enriched with its author,
// leading reactions, and total reaction count.
func CommentList(ctx *gin.Context) {
	taskID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	limit, offset := parseLimitOffset(ctx)

	comments, total, err := query.ListComments(db.DB, taskID, limit, offset)

	if err != nil {
		logger.Error("Failed to list comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(comments) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "comments not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(offset, limit, total),
		"totalCount": total,
		"results":    comments,
	})
}

// UpdateComment replaces the body and marks the comment edited. Only
// the author can edit.
func UpdateComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	commentID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	var body UpdateCommentRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, commentID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
		return
	}

	if comment.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "You can only edit your own comments."})
		return
	}

	updates := map[string]interface{}{
		"body":      body.Comment,
		"is_edited": true,
	}

	if err := db.DB.Model(&comment).Updates(updates).Error; err != nil {
		logger.Error("Failed to update comment %d: %v", commentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	broadcastTaskRefresh(comment.TaskID)

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

// DeleteComment removes the comment and every reaction attached to it.
// Reactions are orphaned otherwise, since nothing else references them.
func DeleteComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	commentID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, commentID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
		return
	}

	if comment.UserID != currentUser.ID && currentUser.Role != "admin" {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own comments."})
		return
	}

	if err := db.DB.Unscoped().Where("comment_id = ?", commentID).Delete(&models.CommentReaction{}).Error; err != nil {
		logger.Error("Failed to delete reactions for comment %d: %v", commentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := db.DB.Unscoped().Delete(&comment).Error; err != nil {
		logger.Error("Failed to delete comment %d: %v", commentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	broadcastTaskRefresh(comment.TaskID)

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

// ReactionToggle applies the single-slot reaction rule and echoes the
// resulting action.
func ReactionToggle(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	var body ReactionRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, body.CommentID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
		return
	}

	action, err := reactions.Toggle(db.DB, body.CommentID, currentUser.ID, body.Reaction)

	if err != nil {
		logger.Error("Failed to toggle reaction on comment %d: %v", body.CommentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	broadcastTaskRefresh(comment.TaskID)

	ctx.JSON(http.StatusOK, gin.H{"message": "success", "action": action})
}

// broadcastTaskRefresh resolves the task's project and nudges its
// websocket watchers. Best effort only.
func broadcastTaskRefresh(taskID uint) {
	var task models.Task

	if err := db.DB.Select("project_id").First(&task, taskID).Error; err != nil {
		logger.Error("Failed to resolve project for task %d: %v", taskID, err)
		return
	}

	ws.BroadcastRefresh(task.ProjectID)
}

func ReactionList(ctx *gin.Context) {
	commentID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	limit, offset := parseLimitOffset(ctx)

	items, total, err := query.ListReactions(db.DB, commentID, limit, offset)

	if err != nil {
		logger.Error("Failed to list reactions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(offset, limit, total),
		"totalCount": total,
		"reactions":  items,
	})
}
