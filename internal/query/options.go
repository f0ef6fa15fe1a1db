// Package query builds filtered, paginated, sorted views over the
// taskdeck entities. Every listing returns the page plus the total
// number of matching rows; callers derive the continuation offset with
// NextOffset. Pagination is plain offset/limit over a descending
// creation-time sort, so concurrent inserts can shift page boundaries.
package query

import (
	"strings"

	"github.com/taskdeck-dev/taskdeck/internal/types"
	"gorm.io/gorm"
)

const DefaultLimit = 10

// Options is the shared list contract: "all" (or empty) status/priority
// means unfiltered, a non-empty search is a case-insensitive substring
// match on the entity's display field, and an empty search is omitted
// from the filter entirely.
type Options struct {
	Limit    int
	Offset   int
	Search   string
	Status   string
	Priority string
}

func (o Options) normalized() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	o.Search = strings.TrimSpace(o.Search)
	return o
}

// NextOffset returns offset+limit when more rows remain, nil otherwise.
// This is the sole continuation token.
func NextOffset(offset, limit int, total int64) *int {
	if int64(offset+limit) < total {
		next := offset + limit
		return &next
	}
	return nil
}

func filterExact(column, value string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if value == "" || value == types.FilterAll {
			return tx
		}
		return tx.Where(column+" = ?", value)
	}
}

func filterSearch(column, search string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if search == "" {
			return tx
		}
		return tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(search)+"%")
	}
}
