package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Create godoc
// @Summary Create a question in a set
// @Description SEL questions are shifted to the front of the set, everything else appends
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Param body body service.QuestionRequest true "question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/question-sets/{id}/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.Create(util.GetUserFromContext(ctx), setID, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// List godoc
// @Summary List the questions of a set in display order
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/question-sets/{id}/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	questions, err := c.QuestionService.List(util.GetUserFromContext(ctx), setID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Update godoc
// @Summary Replace a question's content and variant data
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body service.QuestionRequest true "question payload"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	questionID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.Update(util.GetUserFromContext(ctx), questionID, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Delete godoc
// @Summary Delete a question, keeping its submitted answers
// @Tags questions
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 204
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	questionID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuestionService.Delete(util.GetUserFromContext(ctx), questionID); err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// Reorder godoc
// @Summary Rewrite the display order of a set's questions
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Param body body reorderRequest true "question ids in the new order"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 409 {object} util.Response
// @Router /api/question-sets/{id}/questions/reorder [post]
func (c *QuestionController) Reorder(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	questions, err := c.QuestionService.Reorder(util.GetUserFromContext(ctx), setID, req.OrderedIDs)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
