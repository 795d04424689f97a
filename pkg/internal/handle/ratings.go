package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/service"
	"github.com/darklord813/gamevault/pkg/internal/types"
	"github.com/darklord813/gamevault/pkg/log"
)

// Vote 对游戏投票，匿名用户标识经 X-User-ID 头传递，缺失时由服务端生成并回传.
func Vote(c *gin.Context) {
	l := log.Logger()

	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	userID := req.UserID
	if userID == "" {
		userID = voterID(c)
	}

	svc := service.NewRatingService(c.Request.Context())

	resp, err := svc.Vote(c.Request.Context(), strconv.FormatInt(id, 10), userID, req.Rating)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("X-User-ID", resp.UserID)
	c.JSON(http.StatusOK, resp)
}

// GetAggregate 查询游戏的评分聚合与星级拆分.
func GetAggregate(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	svc := service.NewRatingService(c.Request.Context())
	resp := svc.GetAggregate(c.Request.Context(), strconv.FormatInt(id, 10), voterID(c))

	c.JSON(http.StatusOK, resp)
}

// FeaturedVote 对首页精选位投票，与具体游戏无关.
func FeaturedVote(c *gin.Context) {
	l := log.Logger()

	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	userID := req.UserID
	if userID == "" {
		userID = voterID(c)
	}

	svc := service.NewRatingService(c.Request.Context())

	resp, err := svc.Vote(c.Request.Context(), service.SubjectFeatured, userID, req.Rating)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("X-User-ID", resp.UserID)
	c.JSON(http.StatusOK, resp)
}

// FeaturedAggregate 查询首页精选位的评分聚合.
func FeaturedAggregate(c *gin.Context) {
	svc := service.NewRatingService(c.Request.Context())
	resp := svc.GetAggregate(c.Request.Context(), service.SubjectFeatured, voterID(c))

	c.JSON(http.StatusOK, resp)
}
