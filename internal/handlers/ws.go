package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/ws"
)

// ProjectFeed upgrades the request into the project's refresh feed.
func ProjectFeed(ctx *gin.Context) {
	projectID, ok := parseUintParam(ctx, "project_id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}

	if err := ws.Default().Subscribe(ctx.Writer, ctx.Request, projectID); err != nil {
		logger.Error("Websocket upgrade failed for project %d: %v", projectID, err)
	}
}
