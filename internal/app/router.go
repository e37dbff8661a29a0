package app

import (
	"edu_assessment_backend/internal/config"
	"edu_assessment_backend/internal/middleware"
	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCommonRoutes(authGroup, c)
		a.registerSupervisorRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/token", c.auth.Token)
		public.GET("/languages", c.lookup.Languages)
		public.GET("/countries", c.lookup.Countries)
	}
}

// registerCommonRoutes holds routes both roles reach; the services scope the
// results per role.
func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.PUT("/profile", c.user.UpdateOwnProfile)

	rg.GET("/assessments", c.assessment.List)
	rg.GET("/assessments/:id", c.assessment.Get)
	rg.GET("/assessments/:id/question-sets", c.set.List)
	rg.GET("/question-sets/:id/questions", c.question.List)
	rg.GET("/questions/:id/attachments", c.attachment.ListByQuestion)
	rg.GET("/accesses", c.access.ListOwn)
	rg.GET("/attempts/:id/answers", c.answer.ListByAttempt)
}

func (a *App) registerSupervisorRoutes(rg *gin.RouterGroup, c *controllers) {
	supervisor := rg.Group("/")
	supervisor.Use(middleware.RoleMiddleware(model.Supervisor))
	{
		supervisor.POST("/students", c.user.CreateStudent)
		supervisor.GET("/students", c.user.ListStudents)
		supervisor.GET("/students/:id", c.user.GetStudent)
		supervisor.PUT("/students/:id", c.user.UpdateStudent)
		supervisor.DELETE("/students/:id", c.user.DeleteStudent)

		supervisor.POST("/assessments", c.assessment.Create)
		supervisor.PUT("/assessments/:id", c.assessment.Update)
		supervisor.DELETE("/assessments/:id", c.assessment.Delete)
		supervisor.POST("/assessments/:id/archive", c.assessment.Archive)

		supervisor.POST("/assessments/:id/question-sets", c.set.Create)
		supervisor.POST("/assessments/:id/question-sets/reorder", c.set.Reorder)
		supervisor.PUT("/question-sets/:id", c.set.Update)
		supervisor.DELETE("/question-sets/:id", c.set.Delete)

		supervisor.POST("/question-sets/:id/questions", c.question.Create)
		supervisor.POST("/question-sets/:id/questions/reorder", c.question.Reorder)
		supervisor.PUT("/questions/:id", c.question.Update)
		supervisor.DELETE("/questions/:id", c.question.Delete)

		supervisor.POST("/attachments", c.attachment.Create)
		supervisor.POST("/attachments/upload", c.attachment.Upload)
		supervisor.DELETE("/attachments/:id", c.attachment.Delete)

		supervisor.POST("/accesses", c.access.BulkGrant)

		viz := supervisor.Group("/visualization")
		{
			viz.GET("/question-sets/:id/questions", c.analytics.QuestionStats)
			viz.GET("/question-sets/:id/completion", c.analytics.SetCompletion)
			viz.GET("/question-sets/:id/students/:studentId/durations", c.analytics.QuestionDurations)
			viz.GET("/assessments/:id", c.analytics.AssessmentScore)
			viz.GET("/assessments/:id/students", c.analytics.ListStudentScores)
			viz.GET("/assessments/:id/students/:studentId", c.analytics.StudentAssessmentScore)
			viz.GET("/assessments/:id/students/:studentId/sets", c.analytics.StudentSetScores)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/sessions", c.attempt.StartSession)
		student.POST("/sessions/:id/close", c.attempt.CloseSession)
		student.POST("/attempts", c.attempt.StartAttempt)
		student.POST("/attempts/:id/complete", c.attempt.CompleteAttempt)
		student.GET("/attempts/:id/index", c.attempt.AttemptIndex)
		student.POST("/answers", c.answer.Submit)

		student.GET("/visualization/overview", c.analytics.StudentOverview)
	}
}
