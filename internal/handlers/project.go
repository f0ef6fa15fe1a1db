package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/query"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=500"`
	Status      string `json:"status" binding:"omitempty,oneof=active completed hold archived"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"omitempty,min=3,max=100"`
	Description string `json:"description" binding:"max=500"`
	Status      string `json:"status" binding:"omitempty,oneof=active completed hold archived"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type AddProjectMembersRequest struct {
	ProjectID uint   `json:"projectId" binding:"required"`
	UserIDs   []uint `json:"userIds" binding:"required,min=1"`
	Role      string `json:"role" binding:"omitempty,oneof=owner manager developer designer tester"`
}

// CreateProject rejects a duplicate name (case-insensitive) before
// inserting. The check and the insert are separate statements, so two
// racing creates can both pass the check.
func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	name := strings.TrimSpace(body.Name)

	_, err := query.FindProjectByName(db.DB, name)

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"message": "Project already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error when checking project name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	project := models.Project{
		Name:        name,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	}

	if project.Status == "" {
		project.Status = "active"
	}
	if project.Priority == "" {
		project.Priority = "high"
	}

	if err := db.DB.Create(&project).Error; err != nil {
		logger.Error("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// ListProjects pages projects for the acting user. Admins see every
// project; members see only projects they belong to.
func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	opts := parseListOptions(ctx)

	var (
		projects []query.ProjectItem
		total    int64
	)

	if currentUser.Role == "admin" {
		projects, total, err = query.ListProjects(db.DB, opts)
	} else {
		projects, total, err = query.ListMemberProjects(db.DB, currentUser.ID, opts)
	}

	if err != nil {
		logger.Error("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(projects) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "projects not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(opts.Offset, opts.Limit, total),
		"totalCount": total,
		"projects":   projects,
	})
}

func GetProject(ctx *gin.Context) {
	projectID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
			return
		}
		logger.Error("Failed to fetch project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	counts, err := query.CountProjectTasks(db.DB, project.ID)

	if err != nil {
		logger.Error("Failed to count project tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project":    project,
		"tasksCount": counts,
		"progress":   query.Progress(counts),
	})
}

func UpdateProject(ctx *gin.Context) {
	projectID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}

	if body.Name != "" {
		name := strings.TrimSpace(body.Name)

		if !strings.EqualFold(name, project.Name) {
			_, err := query.FindProjectByName(db.DB, name)

			if err == nil {
				ctx.JSON(http.StatusConflict, gin.H{"message": "Project already exists"})
				return
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Error("Database error when checking project name: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
		}

		updates["name"] = name
	}
	if body.Description != "" {
		updates["description"] = body.Description
	}
	if body.Status != "" {
		updates["status"] = body.Status
	}
	if body.Priority != "" {
		updates["priority"] = body.Priority
	}
	if body.StartDate != "" {
		updates["start_date"] = body.StartDate
	}
	if body.EndDate != "" {
		updates["end_date"] = body.EndDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
		logger.Error("Failed to update project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

func DeleteProject(ctx *gin.Context) {
	projectID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		logger.Error("Failed to delete project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

// AddProjectMembers bulk-inserts membership rows; users already in the
// project are skipped via the unique (user, project) index.
func AddProjectMembers(ctx *gin.Context) {
	var body AddProjectMembersRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}

	role := body.Role
	if role == "" {
		role = "developer"
	}

	rows := make([]models.ProjectMember, 0, len(body.UserIDs))
	for _, userID := range body.UserIDs {
		rows = append(rows, models.ProjectMember{
			UserID:    userID,
			ProjectID: body.ProjectID,
			Role:      role,
		})
	}

	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		logger.Error("Failed to add project members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "success"})
}

// ProjectMemberList pages a project's members; the project is picked by
// the projectId query parameter.
func ProjectMemberList(ctx *gin.Context) {
	projectID, err := strconv.ParseUint(ctx.Query("projectId"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return
	}

	opts := parseListOptions(ctx)

	members, total, err := query.ListProjectMembers(db.DB, uint(projectID), opts)

	if err != nil {
		logger.Error("Failed to list project members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(members) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "members not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(opts.Offset, opts.Limit, total),
		"totalCount": total,
		"members":    members,
	})
}
