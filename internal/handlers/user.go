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
	"github.com/taskdeck-dev/taskdeck/internal/types"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AddMemberRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,oneof=admin member"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female"`
	PhoneNumber string `json:"phoneNumber"`
}

type UpdateMemberRequest struct {
	Name        string `json:"name" binding:"omitempty,min=3,max=50"`
	Role        string `json:"role" binding:"omitempty,oneof=admin member"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female"`
	PhoneNumber string `json:"phoneNumber"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Password        string `json:"password" binding:"omitempty,min=6,max=128"`
	ConfirmPassword string `json:"confirmPassword"`
}

func GetProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	var user models.User

	if err := db.DB.Where("id = ? AND status = ?", userID, "active").First(&user).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	})
}

func UpdateProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}

	if body.Name != "" {
		updates["name"] = strings.TrimSpace(body.Name)
	}

	if body.Password != "" {
		if body.Password != body.ConfirmPassword {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Password and Confirm Password do not match"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		encryptedPassword, err := utils.Encrypt(cfg.Crypto.EncryptionKey, body.Password)
		if err != nil {
			logger.Error("Failed to encrypt password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
		updates["encrypted_password"] = encryptedPassword
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		logger.Error("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

// AddMember creates a member account with a generated password. The
// bcrypt hash is stored next to a reversible encrypted copy so an admin
// can recover the credential later.
func AddMember(ctx *gin.Context) {
	var body AddMemberRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existing models.User

	err := db.DB.Where("email = ?", email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"message": "Email already exists."})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user, err := buildMemberUser(body.Name, email, body.Role, body.DOB, body.Gender, body.PhoneNumber)
	if err != nil {
		logger.Error("Failed to prepare member credentials: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := db.DB.Create(user).Error; err != nil {
		logger.Error("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	})
}

// AddBulkMembers inserts the subset of rows whose emails are not taken
// and reports only the successfully inserted users.
func AddBulkMembers(ctx *gin.Context) {
	var body []AddMemberRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or empty user data"})
		return
	}

	var inserted []types.UserResponse

	for _, member := range body {
		email := strings.ToLower(strings.TrimSpace(member.Email))
		role := member.Role
		if role == "" {
			role = "member"
		}

		var existing models.User
		if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			logger.Info("User with email %s already exists, skipping", email)
			continue
		}

		user, err := buildMemberUser(member.Name, email, role, member.DOB, member.Gender, member.PhoneNumber)
		if err != nil {
			logger.Error("Failed to prepare member credentials: %v", err)
			continue
		}

		if err := db.DB.Create(user).Error; err != nil {
			logger.Error("Failed to create user %s: %v", email, err)
			continue
		}

		inserted = append(inserted, types.UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Status: user.Status,
		})
	}

	if len(inserted) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No new users to add"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": strconv.Itoa(len(inserted)) + " users added successfully",
		"result":  inserted,
	})
}

func MemberList(ctx *gin.Context) {
	opts := query.UserOptions{
		Options:      parseListOptions(ctx),
		Role:         ctx.DefaultQuery("role", types.FilterAll),
		ExcludeEmail: cfg.Admin.Email,
	}

	users, total, err := query.ListUsers(db.DB, opts)

	if err != nil {
		logger.Error("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(users) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "members not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"nextOffset": query.NextOffset(opts.Offset, opts.Limit, total),
		"totalCount": total,
		"users":      users,
	})
}

// ShowPassword decrypts the reversible credential copy for
// admin-assisted recovery.
func ShowPassword(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	decryptedPassword, err := utils.Decrypt(cfg.Crypto.EncryptionKey, user.EncryptedPassword)

	if err != nil {
		logger.Error("Failed to decrypt password for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"decryptedPassword": decryptedPassword})
}

// RemoveMembers soft-deletes the given users: status flips to inactive
// and the delete timestamp is set, no rows are hard-deleted.
func RemoveMembers(ctx *gin.Context) {
	idsParam := ctx.Query("ids")

	if idsParam == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "ids query parameter is required"})
		return
	}

	var ids []uint

	for _, part := range strings.Split(idsParam, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID: " + part})
			return
		}
		ids = append(ids, uint(id))
	}

	if err := db.DB.Model(&models.User{}).Where("id IN ?", ids).Update("status", "inactive").Error; err != nil {
		logger.Error("Failed to deactivate users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := db.DB.Where("id IN ?", ids).Delete(&models.User{}).Error; err != nil {
		logger.Error("Failed to soft delete users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

func UpdateMember(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "member not exist"})
		return
	}

	var body UpdateMemberRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}

	if body.Name != "" {
		updates["name"] = strings.TrimSpace(body.Name)
	}
	if body.Role != "" {
		updates["role"] = body.Role
	}
	if body.Status != "" {
		updates["status"] = body.Status
	}
	if body.DOB != "" {
		updates["dob"] = body.DOB
	}
	if body.Gender != "" {
		updates["gender"] = body.Gender
	}
	if body.PhoneNumber != "" {
		updates["phone_number"] = body.PhoneNumber
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		logger.Error("Failed to update member %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "success"})
}

func buildMemberUser(name, email, role, dob, gender, phone string) (*models.User, error) {
	password := utils.GeneratePassword(16)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	encryptedPassword, err := utils.Encrypt(cfg.Crypto.EncryptionKey, password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Name:              name,
		Email:             email,
		Role:              role,
		Status:            "active",
		PasswordHash:      string(passwordHash),
		EncryptedPassword: encryptedPassword,
		DOB:               dob,
		Gender:            gender,
		PhoneNumber:       phone,
	}, nil
}
