package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

// Submit godoc
// @Summary Submit an answer
// @Description The answer is graded synchronously and stored immutably
// @Tags answers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AnswerRequest true "answer payload"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/answers [post]
func (c *AnswerController) Submit(ctx *gin.Context) {
	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	answer, err := c.AnswerService.Submit(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// ListByAttempt godoc
// @Summary List the answers of an attempt
// @Tags answers
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id}/answers [get]
func (c *AnswerController) ListByAttempt(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	answers, err := c.AnswerService.ListByAttempt(util.GetUserFromContext(ctx), id)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}
