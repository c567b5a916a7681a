package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pagination parses ?limit= and ?offset=. Absent params fall back to the
// defaults; present but non-numeric or negative values are a client error.
func pagination(ctx *gin.Context) (limit, offset int, ok bool) {
	limit = defaultPageSize

	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)

		if err != nil || v <= 0 {
			RespondBadRequest(ctx, "Invalid pagination", gin.H{"limit": raw})
			return 0, 0, false
		}

		limit = v
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if raw := ctx.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)

		if err != nil || v < 0 {
			RespondBadRequest(ctx, "Invalid pagination", gin.H{"offset": raw})
			return 0, 0, false
		}

		offset = v
	}

	return limit, offset, true
}

// idParam parses the :id path segment. A non-numeric id is a client error,
// not a 404.
func idParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid id", gin.H{"id": ctx.Param("id")})
		return 0, false
	}

	return id, true
}
