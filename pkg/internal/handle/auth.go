package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/service"
	"github.com/darklord813/gamevault/pkg/internal/types"
	"github.com/darklord813/gamevault/pkg/log"
)

// Login 管理员登录，成功返回会话令牌.
func Login(c *gin.Context) {
	l := log.Logger()

	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewSessionService(c.Request.Context())

	resp, err := svc.Login(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout 注销当前会话.
func Logout(c *gin.Context) {
	svc := service.NewSessionService(c.Request.Context())
	if err := svc.Logout(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTheme 读取站点主题偏好.
func GetTheme(c *gin.Context) {
	svc := service.NewThemeService(c.Request.Context())
	c.JSON(http.StatusOK, svc.Get(c.Request.Context()))
}

// SetTheme 设置站点主题偏好.
func SetTheme(c *gin.Context) {
	var req types.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewThemeService(c.Request.Context())

	resp, err := svc.Set(c.Request.Context(), req.Theme)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
