package controller

import (
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// CreateStudent godoc
// @Summary Create a student account
// @Description The account gets a generated 6-digit username and no password
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StudentRequest true "student profile"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/students [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	var req service.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	student, err := c.UserService.CreateStudent(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// ListStudents godoc
// @Summary List the supervisor's students
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.UserService.ListStudents(util.GetUserFromContext(ctx))
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// GetStudent godoc
// @Summary Fetch one owned student
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [get]
func (c *UserController) GetStudent(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	student, err := c.UserService.GetStudent(util.GetUserFromContext(ctx), id)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// UpdateStudent godoc
// @Summary Update an owned student's profile
// @Description Username and password are never editable
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "student id"
// @Param body body service.ProfileUpdateRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [put]
func (c *UserController) UpdateStudent(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	student, err := c.UserService.UpdateStudent(util.GetUserFromContext(ctx), id, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// DeleteStudent godoc
// @Summary Delete an owned student
// @Tags students
// @Security ApiKeyAuth
// @Param id path int true "student id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [delete]
func (c *UserController) DeleteStudent(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.UserService.DeleteStudent(util.GetUserFromContext(ctx), id); err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// UpdateOwnProfile godoc
// @Summary Update the caller's own profile
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdateRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [put]
func (c *UserController) UpdateOwnProfile(ctx *gin.Context) {
	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, err := c.UserService.UpdateOwnProfile(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
