package query

import (
	"strings"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

type MemberItem struct {
	ID       uint            `json:"id"`
	Role     string          `json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`
	User     AssigneeSummary `json:"user"`
}

// ListProjectMembers pages a project's membership rows joined to their
// users; the search term matches the member's name or email.
func ListProjectMembers(dbc *gorm.DB, projectID uint, opts Options) ([]MemberItem, int64, error) {
	opts = opts.normalized()

	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Joins("JOIN users ON users.id = project_members.user_id AND users.deleted_at IS NULL").
			Where("project_members.project_id = ?", projectID)

		if opts.Search != "" {
			pattern := "%" + strings.ToLower(opts.Search) + "%"
			tx = tx.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", pattern, pattern)
		}

		return tx
	}

	var total int64
	if err := dbc.Model(&models.ProjectMember{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.ProjectMember
	if err := dbc.Model(&models.ProjectMember{}).Scopes(scope).
		Preload("User").
		Order("project_members.created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	items := make([]MemberItem, 0, len(members))
	for _, member := range members {
		items = append(items, MemberItem{
			ID:       member.ID,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
			User: AssigneeSummary{
				ID:    member.User.ID,
				Name:  member.User.Name,
				Email: member.User.Email,
			},
		})
	}

	return items, total, nil
}
