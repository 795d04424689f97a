package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/service"
	"github.com/darklord813/gamevault/pkg/internal/types"
)

// CreateShareLink 为游戏铸造新的分享码，每次调用产生一个新码.
func CreateShareLink(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	svc := service.NewShareService(c.Request.Context())

	resp, err := svc.CreateLink(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ResolveShareLink 解析分享码：404 表示不存在、410 表示曾经有效但已过期.
func ResolveShareLink(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing share code"})
		return
	}

	svc := service.NewShareService(c.Request.Context())

	resp, err := svc.Resolve(c.Request.Context(), code)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListShareLinks 列出分享链接（管理员），可按 game_id 过滤.
func ListShareLinks(c *gin.Context) {
	svc := service.NewShareService(c.Request.Context())
	resp := svc.ListShares(c.Request.Context())

	if raw := c.Query("game_id"); raw != "" {
		gameID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game_id"})
			return
		}

		filtered := make([]types.ShareInfo, 0, len(resp.Shares))

		for _, s := range resp.Shares {
			if s.GameID == gameID {
				filtered = append(filtered, s)
			}
		}

		resp.Shares = filtered
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteShareLink 删除指定分享码（管理员）.
func DeleteShareLink(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing share code"})
		return
	}

	svc := service.NewShareService(c.Request.Context())
	if err := svc.DeleteShare(c.Request.Context(), code); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
