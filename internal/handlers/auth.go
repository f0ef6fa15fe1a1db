package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/auth"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/types"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password."})
			return
		}
		logger.Error("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password."})
		return
	}

	if user.Status == "inactive" {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "User is inactive contact admin."})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role, auth.TokenTypeAccess)

	if err != nil {
		logger.Error("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	refreshToken, err := auth.GenerateJWT(user.ID, user.Email, user.Role, auth.TokenTypeRefresh)

	if err != nil {
		logger.Error("Failed to generate refresh JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": refreshToken,
		"user": types.UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Status: user.Status,
		},
	})
}

// RefreshToken issues a new access token. RefreshMiddleware has already
// validated the refresh token and loaded the user.
func RefreshToken(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	token, err := auth.GenerateJWT(currentUser.ID, currentUser.Email, currentUser.Role, auth.TokenTypeAccess)

	if err != nil {
		logger.Error("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
