package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Sentinel accepted by list filters meaning "do not filter".
const FilterAll = "all"

var (
	TaskStatuses = []string{"todo", "in_progress", "in_review", "done"}

	Priorities = []string{"low", "medium", "high", "urgent"}

	ProjectStatuses = []string{"active", "completed", "hold", "archived"}

	MemberRoles = []string{"owner", "manager", "developer", "designer", "tester"}
)

type UserResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
