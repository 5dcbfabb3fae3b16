package controller

import (
	"errors"
	"strconv"
	"time"

	"qr_quiz_backend/internal/service"
	"qr_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ScanController serves the public participant surface. Routes here run
// behind optional auth: a valid token identifies a registered user, no
// token means the caller plays anonymously.
type ScanController struct {
	ScanService        *service.ScanService
	ParticipantService *service.ParticipantService
	Leaderboard        *service.LeaderboardService
}

func NewScanController(scanService *service.ScanService, participantService *service.ParticipantService, leaderboard *service.LeaderboardService) *ScanController {
	return &ScanController{
		ScanService:        scanService,
		ParticipantService: participantService,
		Leaderboard:        leaderboard,
	}
}

func scanError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQrCodeNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQrCodeInactive):
		util.Error(ctx, 410, "this code is not active")
	case errors.Is(err, util.ErrParticipantMissing):
		util.BadRequest(ctx, "exactly one participant identity is required")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Resolve godoc
// @Summary Resolve a scanned QR code
// @Description Returns the question or quiz behind a code, with answer data stripped
// @Tags scan
// @Produce json
// @Param id path string true "QR code ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/scan/{id} [get]
func (c *ScanController) Resolve(ctx *gin.Context) {
	content, err := c.ScanService.Resolve(ctx.Param("id"), time.Now())
	if err != nil {
		scanError(ctx, err)
		return
	}

	resp := gin.H{
		"status":     content.Status,
		"qr_code_id": content.QrCodeID,
	}
	switch content.Status {
	case service.ScanStatic:
		resp["question"] = service.SanitizeQuestion(content.Question)
	case service.ScanDynamic:
		resp["quiz"] = service.SanitizeQuiz(content.Quiz)
	}
	util.Success(ctx, resp)
}

type SubmitBody struct {
	Answers          map[string]interface{} `json:"answers" binding:"required"`
	AnonymousID      string                 `json:"anonymous_id"`
	TimeTakenSeconds *int                   `json:"time_taken_seconds"`
}

// Submit godoc
// @Summary Submit answers for a scanned code
// @Description Grades the submission and records the attempt. Authenticated callers are credited to their account; others must send an anonymous_id.
// @Tags scan
// @Accept json
// @Produce json
// @Param id path string true "QR code ID"
// @Param body body SubmitBody true "Answers keyed by question ID"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response "Code inactive"
// @Router /api/scan/{id}/submit [post]
func (c *ScanController) Submit(ctx *gin.Context) {
	var body SubmitBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req := service.SubmitRequest{
		Answers:          body.Answers,
		TimeTakenSeconds: body.TimeTakenSeconds,
	}
	// Token wins over anonymous_id; the user identity comes from the claims
	// so it cannot be spoofed in the body.
	if claims := util.GetUserFromContext(ctx); claims != nil {
		req.UserID = claims.UserID
	} else {
		req.AnonymousID = body.AnonymousID
	}

	result, err := c.ScanService.Submit(ctx.Param("id"), req, time.Now())
	if err != nil {
		scanError(ctx, err)
		return
	}

	c.Leaderboard.Invalidate(ctx.Request.Context())
	util.Success(ctx, result)
}

// Join godoc
// @Summary Join as an anonymous participant
// @Description Issues an anonymous id the client keeps for later submissions
// @Tags scan
// @Accept json
// @Produce json
// @Param body body service.JoinRequest true "Display name"
// @Success 201 {object} util.Response{data=model.AnonymousStudent}
// @Failure 400 {object} util.Response
// @Router /api/participants [post]
func (c *ScanController) Join(ctx *gin.Context) {
	var req service.JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.ParticipantService.Join(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// GetParticipant godoc
// @Summary Look up an anonymous participant
// @Tags scan
// @Produce json
// @Param id path string true "Anonymous participant ID"
// @Success 200 {object} util.Response{data=model.AnonymousStudent}
// @Failure 404 {object} util.Response
// @Router /api/participants/{id} [get]
func (c *ScanController) GetParticipant(ctx *gin.Context) {
	student, err := c.ParticipantService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, student)
}

// ParticipantAttempts godoc
// @Summary An anonymous participant's attempt history
// @Tags scan
// @Produce json
// @Param id path string true "Anonymous participant ID"
// @Param limit query int false "Max rows" default(50)
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/participants/{id}/attempts [get]
func (c *ScanController) ParticipantAttempts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	attempts, err := c.ParticipantService.History(ctx.Param("id"), limit)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, attempts)
}
