package controller

import (
	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

func attemptSelector(ctx *gin.Context) model.AttemptSelector {
	if ctx.Query("attempt") == string(model.LastAttempt) {
		return model.LastAttempt
	}
	return model.FirstAttempt
}

// QuestionStats godoc
// @Summary Per-question correctness across the supervisor's students
// @Description attempt=first|last picks which complete attempt of each student counts
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Param attempt query string false "first or last" default(first)
// @Success 200 {object} util.Response{data=[]model.QuestionStat}
// @Router /api/visualization/question-sets/{id}/questions [get]
func (c *AnalyticsController) QuestionStats(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	stats, err := c.AnalyticsService.QuestionStats(util.GetUserFromContext(ctx), setID, attemptSelector(ctx))
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// StudentSetScores godoc
// @Summary Per-set scores of one student on an assessment
// @Description Scores render as a percentage, "not_started", "not_evaluated", or null without access
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param studentId path int true "student id"
// @Success 200 {object} util.Response{data=[]model.SetScore}
// @Router /api/visualization/assessments/{id}/students/{studentId}/sets [get]
func (c *AnalyticsController) StudentSetScores(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := paramID(ctx, "studentId")
	if !ok {
		return
	}
	scores, err := c.AnalyticsService.StudentSetScores(util.GetUserFromContext(ctx), studentID, assessmentID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// StudentAssessmentScore godoc
// @Summary Aggregate score of one student on an assessment
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param studentId path int true "student id"
// @Success 200 {object} util.Response{data=model.StudentAssessmentScore}
// @Router /api/visualization/assessments/{id}/students/{studentId} [get]
func (c *AnalyticsController) StudentAssessmentScore(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := paramID(ctx, "studentId")
	if !ok {
		return
	}
	score, err := c.AnalyticsService.StudentAssessmentScore(util.GetUserFromContext(ctx), studentID, assessmentID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, score)
}

// ListStudentScores godoc
// @Summary Aggregate scores of every owned student on an assessment
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response{data=[]model.StudentAssessmentScore}
// @Router /api/visualization/assessments/{id}/students [get]
func (c *AnalyticsController) ListStudentScores(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	scores, err := c.AnalyticsService.ListStudentScores(util.GetUserFromContext(ctx), assessmentID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// AssessmentScore godoc
// @Summary Average score over an assessment's evaluated sets
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response{data=model.AssessmentScore}
// @Router /api/visualization/assessments/{id} [get]
func (c *AnalyticsController) AssessmentScore(ctx *gin.Context) {
	assessmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	score, err := c.AnalyticsService.AssessmentScore(util.GetUserFromContext(ctx), assessmentID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, score)
}

// QuestionDurations godoc
// @Summary Mean answering time per question for one student on a set
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Param studentId path int true "student id"
// @Success 200 {object} util.Response{data=[]model.QuestionDuration}
// @Router /api/visualization/question-sets/{id}/students/{studentId}/durations [get]
func (c *AnalyticsController) QuestionDurations(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := paramID(ctx, "studentId")
	if !ok {
		return
	}
	durations, err := c.AnalyticsService.QuestionDurations(util.GetUserFromContext(ctx), studentID, setID)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, durations)
}

// StudentOverview godoc
// @Summary The student's home dashboard counters
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.StudentOverview}
// @Router /api/visualization/overview [get]
func (c *AnalyticsController) StudentOverview(ctx *gin.Context) {
	overview, err := c.AnalyticsService.StudentOverview(util.GetUserFromContext(ctx))
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// SetCompletion godoc
// @Summary Count of distinct students who completed a set
// @Tags visualization
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question set id"
// @Param active query bool false "restrict to currently valid access windows"
// @Success 200 {object} util.Response{data=model.SetCompletion}
// @Router /api/visualization/question-sets/{id}/completion [get]
func (c *AnalyticsController) SetCompletion(ctx *gin.Context) {
	setID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	completion, err := c.AnalyticsService.SetCompletion(util.GetUserFromContext(ctx), setID, ctx.Query("active") == "true")
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}
