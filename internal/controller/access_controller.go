package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AccessController struct {
	AccessService *service.AccessService
}

func NewAccessController(accessService *service.AccessService) *AccessController {
	return &AccessController{AccessService: accessService}
}

// BulkGrant godoc
// @Summary Grant question set access to students
// @Description Upserts one access per (student, set) pair; re-granting replaces the date window. Sets without questions are rejected individually.
// @Tags accesses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BulkGrantRequest true "students and windows"
// @Success 200 {object} util.Response{data=service.BulkGrantResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/accesses [post]
func (c *AccessController) BulkGrant(ctx *gin.Context) {
	var req service.BulkGrantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.AccessService.BulkGrant(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListOwn godoc
// @Summary List the caller's accesses with today's validity flag
// @Tags accesses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AccessView}
// @Router /api/accesses [get]
func (c *AccessController) ListOwn(ctx *gin.Context) {
	views, err := c.AccessService.ListOwn(util.GetUserFromContext(ctx))
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, views)
}
