package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionSetController struct {
	SetService *service.QuestionSetService
}

func NewQuestionSetController(setService *service.QuestionSetService) *QuestionSetController {
	return &QuestionSetController{SetService: setService}
}

// Create godoc
// @Summary Create a question set at the end of an assessment
// @Tags question-sets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body service.QuestionSetRequest true "set payload"
// @Success 201 {object} util.Response{data=model.QuestionSet}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/question-sets [post]
func (c *QuestionSetController) Create(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	set, err := c.SetService.Create(util.GetUserFromContext(ctx), assessmentID, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, set)
}

// List godoc
// @Summary List the sets of an assessment in display order
// @Description Students only see sets with a currently valid access
// @Tags question-sets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response{data=[]model.QuestionSet}
// @Router /api/assessments/{id}/question-sets [get]
func (c *QuestionSetController) List(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	sets, err := c.SetService.List(util.GetUserFromContext(ctx), assessmentID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, sets)
}

// Update godoc
// @Summary Update a question set
// @Tags question-sets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Param body body service.QuestionSetRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.QuestionSet}
// @Router /api/question-sets/{id} [put]
func (c *QuestionSetController) Update(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	set, err := c.SetService.Update(util.GetUserFromContext(ctx), setID, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, set)
}

// Delete godoc
// @Summary Delete a question set and resequence its siblings
// @Tags question-sets
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Success 204
// @Router /api/question-sets/{id} [delete]
func (c *QuestionSetController) Delete(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.SetService.Delete(util.GetUserFromContext(ctx), setID); err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

type reorderRequest struct {
	OrderedIDs []uint `json:"orderedIds" binding:"required,min=1"`
}

// Reorder godoc
// @Summary Rewrite the display order of an assessment's sets
// @Description The id list must be a permutation of the assessment's sets
// @Tags question-sets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body reorderRequest true "set ids in the new order"
// @Success 200 {object} util.Response{data=[]model.QuestionSet}
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/question-sets/reorder [post]
func (c *QuestionSetController) Reorder(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sets, err := c.SetService.Reorder(util.GetUserFromContext(ctx), assessmentID, req.OrderedIDs)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, sets)
}
