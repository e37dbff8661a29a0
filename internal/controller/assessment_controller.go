package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// Create godoc
// @Summary Create an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssessmentRequest true "assessment payload"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.AssessmentService.Create(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// List godoc
// @Summary List assessments visible to the caller
// @Description Supervisors see owned plus public assessments, students what a valid access reaches
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	out, err := c.AssessmentService.List(util.GetUserFromContext(ctx))
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// Get godoc
// @Summary Fetch one assessment with its question sets
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	a, err := c.AssessmentService.Get(util.GetUserFromContext(ctx), id)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// Update godoc
// @Summary Update an owned assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body service.AssessmentUpdateRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req service.AssessmentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.AssessmentService.Update(util.GetUserFromContext(ctx), id, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// Delete godoc
// @Summary Delete an owned assessment and everything under it
// @Tags assessments
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 204
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AssessmentService.Delete(util.GetUserFromContext(ctx), id); err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

// Archive godoc
// @Summary Archive or unarchive an owned assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body archiveRequest true "archive flag"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/assessments/{id}/archive [post]
func (c *AssessmentController) Archive(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req archiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.AssessmentService.Archive(util.GetUserFromContext(ctx), id, req.Archived)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, a)
}
