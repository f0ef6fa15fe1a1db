package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/query"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
)

const recentLimit = 3

func DashboardOverview(ctx *gin.Context) {
	members, err := query.CountMembers(db.DB)
	if err != nil {
		logger.Error("Failed to count members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	projects, err := query.CountProjects(db.DB)
	if err != nil {
		logger.Error("Failed to count projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	tasks, err := query.CountTasks(db.DB)
	if err != nil {
		logger.Error("Failed to count tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"members":  members,
		"projects": projects,
		"tasks":    tasks,
	})
}

func DashboardProjects(ctx *gin.Context) {
	projects, err := query.TopProjectsByProgress(db.DB, 5)

	if err != nil {
		logger.Error("Failed to rank projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

func DashboardTasks(ctx *gin.Context) {
	tasks, err := query.RecentTasks(db.DB, recentLimit)

	if err != nil {
		logger.Error("Failed to fetch recent tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func DashboardMembers(ctx *gin.Context) {
	members, err := query.RecentMembers(db.DB, recentLimit)

	if err != nil {
		logger.Error("Failed to fetch recent members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"members": members})
}

func DashboardActivity(ctx *gin.Context) {
	activities, err := query.RecentActivities(db.DB, recentLimit)

	if err != nil {
		logger.Error("Failed to fetch recent activity: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"activities": activities})
}

// DashboardChart builds the parameterized chart rollup. Members are
// automatically scoped to tasks assigned to them; admins see
// everything.
func DashboardChart(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	var opts query.ChartOptions

	if raw := ctx.Query("projectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
			return
		}
		projectID := uint(id)
		opts.ProjectID = &projectID
	}

	if raw := ctx.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate, expected YYYY-MM-DD"})
			return
		}
		opts.StartDate = &start
	}

	if raw := ctx.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate, expected YYYY-MM-DD"})
			return
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		opts.EndDate = &end
	}

	if (opts.StartDate == nil) != (opts.EndDate == nil) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "startDate and endDate must be provided together"})
		return
	}

	if currentUser.Role != "admin" {
		userID := currentUser.ID
		opts.AssigneeID = &userID
	}

	data, err := query.BuildChartData(db.DB, opts)

	if err != nil {
		logger.Error("Failed to build chart data: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, data)
}
