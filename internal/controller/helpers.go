package controller

import (
	"strconv"

	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter; ok is false after the 400 has
// already been written.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
