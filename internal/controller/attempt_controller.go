package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// StartSession godoc
// @Summary Open a sitting
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response{data=model.AnswerSession}
// @Failure 403 {object} util.Response
// @Router /api/sessions [post]
func (c *AttemptController) StartSession(ctx *gin.Context) {
	session, err := c.AttemptService.StartSession(util.GetUserFromContext(ctx))
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// CloseSession godoc
// @Summary Close a sitting
// @Tags attempts
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id}/close [post]
func (c *AttemptController) CloseSession(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AttemptService.CloseSession(util.GetUserFromContext(ctx), id); err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// StartAttempt godoc
// @Summary Open an attempt on an access valid today
// @Description An access holds at most one open attempt; a duplicate open returns the existing attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartAttemptRequest true "session and access"
// @Success 201 {object} util.Response{data=model.QuestionSetAnswer}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req service.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	attempt, err := c.AttemptService.StartAttempt(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// CompleteAttempt godoc
// @Summary Complete an attempt
// @Description Completion is one-way and idempotent
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response{data=model.QuestionSetAnswer}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id}/complete [post]
func (c *AttemptController) CompleteAttempt(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	attempt, err := c.AttemptService.CompleteAttempt(util.GetUserFromContext(ctx), id)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// AttemptIndex godoc
// @Summary Rank of an attempt among its access's attempts
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id}/index [get]
func (c *AttemptController) AttemptIndex(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	index, err := c.AttemptService.AttemptIndex(util.GetUserFromContext(ctx), id)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"index": index})
}
