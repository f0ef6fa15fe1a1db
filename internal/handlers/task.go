package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/activity"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/query"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"github.com/taskdeck-dev/taskdeck/internal/ws"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AddTaskRequest struct {
	ProjectID   uint     `json:"projectId" binding:"required"`
	Title       string   `json:"title" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"max=1000"`
	Status      string   `json:"status" binding:"omitempty,oneof=todo in_progress in_review done"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *uint    `json:"assigneeId"`
	Labels      []string `json:"labels"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=1000"`
	Status      *string   `json:"status" binding:"omitempty,oneof=todo in_progress in_review done"`
	Priority    *string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *uint     `json:"assigneeId"`
	Labels      *[]string `json:"labels"`
	StartDate   *string   `json:"startDate"`
	EndDate     *string   `json:"endDate"`
}

// AddTask creates a task inside a project, folds any new labels into
// the catalog, appends the creation audit row, and nudges websocket
// watchers. Audit and catalog failures are logged, never surfaced.
func AddTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	var body AddTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate, expected YYYY-MM-DD"})
		return
	}

	endDate, err := parseDate(body.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate, expected YYYY-MM-DD"})
		return
	}

	task := models.Task{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		ProjectID:   body.ProjectID,
		AssigneeID:  body.AssigneeID,
		Labels:      encodeLabels(body.Labels),
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if task.Status == "" {
		task.Status = "todo"
	}
	if task.Priority == "" {
		task.Priority = "low"
	}

	if err := db.DB.Create(&task).Error; err != nil {
		logger.Error("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := query.SyncLabels(db.DB, body.Labels); err != nil {
		logger.Error("Failed to sync labels for task %d: %v", task.ID, err)
	}

	actor := activity.Actor{ID: currentUser.ID, Name: currentUser.Name}
	if err := activity.RecordCreated(db.DB, task.ID, actor); err != nil {
		logger.Error("Failed to record task creation for task %d: %v", task.ID, err)
	}

	ws.BroadcastRefresh(body.ProjectID)

	created, err := query.GetTask(db.DB, task.ID)

	if err != nil {
		logger.Error("Failed to reload task %d: %v", task.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, query.NewTaskItem(*created))
}

// ListTasks pages a project's tasks. With grouped=true it returns four
// kanban columns instead, each paginated on its own.
func ListTasks(ctx *gin.Context) {
	projectID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return
	}

	opts := parseListOptions(ctx)

	if ctx.Query("grouped") == "true" {
		pages, err := query.ListTasksGrouped(db.DB, projectID, opts)

		if err != nil {
			logger.Error("Failed to list grouped tasks: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"tasks": pages, "type": "grouped"})
		return
	}

	tasks, total, err := query.ListTasks(db.DB, projectID, opts)

	if err != nil {
		logger.Error("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(tasks) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "tasks not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(opts.Offset, opts.Limit, total),
		"totalCount": total,
		"tasks":      tasks,
		"type":       "list",
	})
}

// UpdateTask applies a partial update, audits every changed field
// against the pre-update snapshot, syncs labels, and broadcasts a
// refresh. The task id arrives in the path; its project scopes the
// broadcast.
func UpdateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	taskID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	before, err := query.GetTask(db.DB, taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
			return
		}
		logger.Error("Failed to fetch task %d: %v", taskID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	patch, updates, err := buildTaskPatch(body)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	changes := activity.Diff(db.DB, before, patch)

	if err := db.DB.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates).Error; err != nil {
		logger.Error("Failed to update task %d: %v", taskID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	actor := activity.Actor{ID: currentUser.ID, Name: currentUser.Name}
	if err := activity.RecordUpdated(db.DB, taskID, actor, changes); err != nil {
		logger.Error("Failed to record task update for task %d: %v", taskID, err)
	}

	if patch.Labels != nil {
		if err := query.SyncLabels(db.DB, *patch.Labels); err != nil {
			logger.Error("Failed to sync labels for task %d: %v", taskID, err)
		}
	}

	ws.BroadcastRefresh(before.ProjectID)

	task, err := query.GetTask(db.DB, taskID)

	if err != nil {
		logger.Error("Failed to reload task %d: %v", taskID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, query.NewTaskItem(*task))
}

func TaskDetails(ctx *gin.Context) {
	taskID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	task, err := query.GetTask(db.DB, taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
			return
		}
		logger.Error("Failed to fetch task %d: %v", taskID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, query.NewTaskItem(*task))
}

func LabelList(ctx *gin.Context) {
	opts := parseListOptions(ctx)

	labels, total, err := query.ListLabels(db.DB, opts)

	if err != nil {
		logger.Error("Failed to list labels: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(opts.Offset, opts.Limit, total),
		"totalCount": total,
		"labels":     labels,
	})
}

func ActivityList(ctx *gin.Context) {
	taskID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	limit, offset := parseLimitOffset(ctx)

	activities, total, err := query.ListActivities(db.DB, taskID, limit, offset)

	if err != nil {
		logger.Error("Failed to list activities: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(activities) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "activity not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(offset, limit, total),
		"totalCount": total,
		"activities": activities,
	})
}

// buildTaskPatch converts the request body into the typed audit patch
// and the column update map in one pass, so the diff and the write see
// the same values.
func buildTaskPatch(body UpdateTaskRequest) (activity.TaskPatch, map[string]interface{}, error) {
	patch := activity.TaskPatch{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		AssigneeID:  body.AssigneeID,
		Labels:      body.Labels,
	}

	updates := map[string]interface{}{}

	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}
	if body.Priority != nil {
		updates["priority"] = *body.Priority
	}
	if body.AssigneeID != nil {
		if *body.AssigneeID == 0 {
			updates["assignee_id"] = nil
		} else {
			updates["assignee_id"] = *body.AssigneeID
		}
	}
	if body.Labels != nil {
		updates["labels"] = encodeLabels(*body.Labels)
	}

	// An empty date string clears the column; the zero time carries the
	// clear through to the audit diff.
	if body.StartDate != nil {
		startDate, err := parseDate(*body.StartDate)
		if err != nil {
			return patch, nil, errors.New("Invalid startDate, expected YYYY-MM-DD")
		}
		if startDate == nil {
			patch.StartDate = &time.Time{}
			updates["start_date"] = nil
		} else {
			patch.StartDate = startDate
			updates["start_date"] = startDate
		}
	}

	if body.EndDate != nil {
		endDate, err := parseDate(*body.EndDate)
		if err != nil {
			return patch, nil, errors.New("Invalid endDate, expected YYYY-MM-DD")
		}
		if endDate == nil {
			patch.EndDate = &time.Time{}
			updates["end_date"] = nil
		} else {
			patch.EndDate = endDate
			updates["end_date"] = endDate
		}
	}

	return patch, updates, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func encodeLabels(labels []string) datatypes.JSON {
	if len(labels) == 0 {
		return nil
	}

	raw, err := json.Marshal(labels)
	if err != nil {
		return nil
	}

	return datatypes.JSON(raw)
}
