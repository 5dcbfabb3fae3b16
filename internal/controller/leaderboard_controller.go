package controller

import (
	"strconv"

	"qr_quiz_backend/internal/service"
	"qr_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	Leaderboard *service.LeaderboardService
}

func NewLeaderboardController(leaderboard *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{Leaderboard: leaderboard}
}

// Top godoc
// @Summary Leaderboard
// @Description Highest scoring participants, anonymous and registered combined
// @Tags scan
// @Produce json
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	entries, err := c.Leaderboard.Top(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
