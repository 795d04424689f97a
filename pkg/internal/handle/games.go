package handle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/service"
	"github.com/darklord813/gamevault/pkg/internal/types"
	"github.com/darklord813/gamevault/pkg/log"
)

// ListGames 按筛选条件枚举游戏.
func ListGames(c *gin.Context) {
	var filter types.GameFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewCatalogService(c.Request.Context())
	games := svc.List(c.Request.Context(), &filter)

	c.JSON(http.StatusOK, types.ListGamesResponse{Games: games, Total: len(games)})
}

// GetGame 获取单个游戏，默认记录一次浏览，?peek=1 时只读.
func GetGame(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	svc := service.NewCatalogService(c.Request.Context())

	var (
		game *model.Game
		err  error
	)

	if c.Query("peek") == "1" {
		game, err = svc.Get(c.Request.Context(), id)
	} else {
		game, err = svc.RecordView(c.Request.Context(), id)
	}

	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.GameResponse{
		Game:  *game,
		Stars: model.RenderStars(game.Rating),
	})
}

// CreateGame 创建游戏（管理员）.
func CreateGame(c *gin.Context) {
	l := log.Logger()

	var req types.SaveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewCatalogService(c.Request.Context())

	game, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.GameResponse{Game: *game, Stars: model.RenderStars(0)})
}

// UpdateGame 更新游戏（管理员）.
func UpdateGame(c *gin.Context) {
	l := log.Logger()

	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	var req types.SaveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewCatalogService(c.Request.Context())

	game, err := svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.GameResponse{Game: *game, Stars: model.RenderStars(game.Rating)})
}

// DeleteGame 删除游戏并级联清理分享链接与评分（管理员）.
func DeleteGame(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	svc := service.NewCatalogService(c.Request.Context())
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordDownload 下载计数，按链接平台标签累加统计.
func RecordDownload(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	var req types.RecordDownloadRequest
	// 请求体可省略，标签留空时服务端回退到游戏平台
	_ = c.ShouldBindJSON(&req)

	svc := service.NewCatalogService(c.Request.Context())

	game, err := svc.RecordDownload(c.Request.Context(), id, req.Label)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.CounterResponse{
		GameID:     game.ID,
		Downloads:  game.Downloads,
		Views:      game.Views,
		RecordedAt: time.Now().UTC(),
	})
}
