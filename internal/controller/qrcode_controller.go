package controller

import (
	"errors"
	"strconv"

	"qr_quiz_backend/internal/service"
	"qr_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QrCodeController struct {
	QrCodeService *service.QrCodeService
	ExportService *service.ExportService
}

func NewQrCodeController(qrCodeService *service.QrCodeService, exportService *service.ExportService) *QrCodeController {
	return &QrCodeController{QrCodeService: qrCodeService, ExportService: exportService}
}

func qrError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQrCodeNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrStaticQrImmutable):
		util.Error(ctx, 409, "static codes cannot be reassigned")
	case errors.Is(err, util.ErrInvalidQrType):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateQrCode godoc
// @Summary Create a QR code
// @Description Static codes lock to one question at creation; dynamic codes can point at any quiz later
// @Tags qrcodes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QrCodeRequest true "QR code payload"
// @Success 201 {object} util.Response{data=model.QrCode}
// @Failure 400 {object} util.Response
// @Router /api/qrcodes [post]
func (c *QrCodeController) CreateQrCode(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QrCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	qr, err := c.QrCodeService.CreateQrCode(claims.UserID, req)
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Created(ctx, qr)
}

// ListQrCodes godoc
// @Summary List QR codes
// @Tags qrcodes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/qrcodes [get]
func (c *QrCodeController) ListQrCodes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	codes, total, err := c.QrCodeService.ListQrCodes(claims, page, limit)
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"qr_codes": codes, "total": total, "page": page, "limit": limit})
}

// GetQrCode godoc
// @Summary Get a QR code with its assignment history and attempt count
// @Tags qrcodes
// @Produce json
// @Security BearerAuth
// @Param id path string true "QR code ID"
// @Success 200 {object} util.Response{data=service.QrCodeDetail}
// @Failure 404 {object} util.Response
// @Router /api/qrcodes/{id} [get]
func (c *QrCodeController) GetQrCode(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.QrCodeService.GetQrCode(claims, ctx.Param("id"))
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// UpdateQrCode godoc
// @Summary Update a QR code's label, location or active flag
// @Tags qrcodes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "QR code ID"
// @Param body body service.QrCodeUpdateRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.QrCode}
// @Failure 404 {object} util.Response
// @Router /api/qrcodes/{id} [put]
func (c *QrCodeController) UpdateQrCode(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QrCodeUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	qr, err := c.QrCodeService.UpdateQrCode(claims, ctx.Param("id"), req)
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, qr)
}

// DeleteQrCode godoc
// @Summary Delete a QR code and its assignment history
// @Tags qrcodes
// @Produce json
// @Security BearerAuth
// @Param id path string true "QR code ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/qrcodes/{id} [delete]
func (c *QrCodeController) DeleteQrCode(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QrCodeService.DeleteQrCode(claims, ctx.Param("id")); err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Assign godoc
// @Summary Point a dynamic code at a quiz now
// @Tags qrcodes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "QR code ID"
// @Param body body service.AssignRequest true "Target quiz"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Static codes cannot be reassigned"
// @Router /api/qrcodes/{id}/assign [post]
func (c *QrCodeController) Assign(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QrCodeService.Assign(claims, ctx.Param("id"), req); err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Schedule godoc
// @Summary Schedule a future quiz assignment
// @Description The assignment takes effect on the first scan inside its window
// @Tags qrcodes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "QR code ID"
// @Param body body service.ScheduleRequest true "Assignment window"
// @Success 201 {object} util.Response{data=model.QrCodeAssignment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Static codes cannot be reassigned"
// @Router /api/qrcodes/{id}/schedule [post]
func (c *QrCodeController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.QrCodeService.Schedule(claims, ctx.Param("id"), req)
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// ExportImage godoc
// @Summary Render a QR code as a printable image
// @Tags qrcodes
// @Produce json
// @Security BearerAuth
// @Param id path string true "QR code ID"
// @Success 200 {object} util.Response{data=service.CodeImage}
// @Failure 404 {object} util.Response
// @Router /api/qrcodes/{id}/image [get]
func (c *QrCodeController) ExportImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	image, err := c.ExportService.CodeImage(claims, ctx.Param("id"))
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, image)
}

// ExportQuizSheet godoc
// @Summary Export a quiz as a printable QR sheet
// @Description One static code per question; reprints reuse existing codes
// @Tags qrcodes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=service.QuizSheet}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/qr-sheet [get]
func (c *QrCodeController) ExportQuizSheet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sheet, err := c.ExportService.QuizSheet(claims, ctx.Param("id"))
	if err != nil {
		qrError(ctx, err)
		return
	}
	util.Success(ctx, sheet)
}
