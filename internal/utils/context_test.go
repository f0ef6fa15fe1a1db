package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/internal/middleware"
	"github.com/taskdeck-dev/taskdeck/internal/types"
)

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{ID: 7, Name: "Dana"})

	id, err := GetCurrentUserID(ctx)
	if err != nil {
		t.Fatalf("GetCurrentUserID failed: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}
}

func TestGetCurrentUserIDUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, err := GetCurrentUserID(ctx); err == nil {
		t.Error("expected error without a user in context")
	}
}
