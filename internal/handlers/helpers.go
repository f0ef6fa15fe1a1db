package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/internal/config"
	"github.com/taskdeck-dev/taskdeck/internal/query"
	"github.com/taskdeck-dev/taskdeck/internal/types"
)

var cfg *config.Config

// Init wires the loaded configuration into the handler layer.
func Init(c *config.Config) {
	cfg = c
}

func parseLimitOffset(ctx *gin.Context) (int, int) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = query.DefaultLimit
	}

	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

func parseListOptions(ctx *gin.Context) query.Options {
	limit, offset := parseLimitOffset(ctx)

	return query.Options{
		Limit:    limit,
		Offset:   offset,
		Search:   ctx.Query("search"),
		Status:   ctx.DefaultQuery("status", types.FilterAll),
		Priority: ctx.DefaultQuery("priority", types.FilterAll),
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
