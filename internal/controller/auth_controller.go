package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// Register godoc
// @Summary Register a supervisor account
// @Description Students are created by supervisors and cannot self-register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.RegisterSupervisor(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID, "username": user.Username})
}

// swagger:model TokenRequest
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// Token godoc
// @Summary Obtain a JWT
// @Description Supervisors authenticate with email and password, students with their 6-digit code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "credentials"
// @Success 200 {object} util.Response{data=service.TokenResponse}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Token(req.Username, req.Password)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
