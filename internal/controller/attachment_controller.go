package controller

import (
	"encoding/json"

	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttachmentController struct {
	AttachmentService *service.AttachmentService
}

func NewAttachmentController(attachmentService *service.AttachmentService) *AttachmentController {
	return &AttachmentController{AttachmentService: attachmentService}
}

// Create godoc
// @Summary Register a link-only attachment
// @Tags attachments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AttachmentRequest true "attachment payload"
// @Success 201 {object} util.Response{data=model.Attachment}
// @Failure 400 {object} util.Response
// @Router /api/attachments [post]
func (c *AttachmentController) Create(ctx *gin.Context) {
	var req service.AttachmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	attachment, err := c.AttachmentService.Create(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, attachment)
}

// Upload godoc
// @Summary Upload an attachment binary
// @Description Multipart form: "file" holds the binary, "meta" the JSON-encoded AttachmentRequest
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "binary"
// @Param meta formData string true "JSON-encoded attachment metadata"
// @Success 201 {object} util.Response{data=model.Attachment}
// @Failure 400 {object} util.Response
// @Router /api/attachments/upload [post]
func (c *AttachmentController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	var req service.AttachmentRequest
	if err := json.Unmarshal([]byte(ctx.PostForm("meta")), &req); err != nil {
		util.BadRequest(ctx, "meta must be JSON-encoded attachment metadata")
		return
	}

	attachment, err := c.AttachmentService.Upload(ctx.Request.Context(), util.GetUserFromContext(ctx), file, req)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Created(ctx, attachment)
}

// Delete godoc
// @Summary Delete an attachment and its stored binary
// @Tags attachments
// @Security ApiKeyAuth
// @Param id path int true "attachment id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/attachments/{id} [delete]
func (c *AttachmentController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AttachmentService.Delete(ctx.Request.Context(), util.GetUserFromContext(ctx), id); err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListByQuestion godoc
// @Summary List the attachments of a question
// @Tags attachments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=[]model.Attachment}
// @Router /api/questions/{id}/attachments [get]
func (c *AttachmentController) ListByQuestion(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	attachments, err := c.AttachmentService.ListByQuestion(id)
	if err != nil {
		util.RenderError(ctx, err)
		return
	}
	util.Success(ctx, attachments)
}
