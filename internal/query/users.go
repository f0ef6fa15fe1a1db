package query

import (
	"strings"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

type UserItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	DOB         string    `json:"dob,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserOptions extends the shared list contract with a role filter for
// the admin member list.
type UserOptions struct {
	Options
	Role string
	// The seeded admin account is hidden from member listings.
	ExcludeEmail string
}

func ListUsers(dbc *gorm.DB, opts UserOptions) ([]UserItem, int64, error) {
	opts.Options = opts.Options.normalized()

	scope := func(tx *gorm.DB) *gorm.DB {
		if opts.ExcludeEmail != "" {
			tx = tx.Where("email != ?", opts.ExcludeEmail)
		}
		tx = filterExact("users.status", opts.Status)(tx)
		tx = filterExact("users.role", opts.Role)(tx)

		if opts.Search != "" {
			pattern := "%" + strings.ToLower(opts.Search) + "%"
			tx = tx.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", pattern, pattern)
		}

		return tx
	}

	var total int64
	if err := dbc.Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := dbc.Model(&models.User{}).Scopes(scope).
		Order("users.created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	items := make([]UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, UserItem{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			Role:        user.Role,
			Status:      user.Status,
			DOB:         user.DOB,
			Gender:      user.Gender,
			PhoneNumber: user.PhoneNumber,
			CreatedAt:   user.CreatedAt,
		})
	}

	return items, total, nil
}
