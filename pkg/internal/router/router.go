// Package router 管理路由配置，用于设置HTTP服务的路由.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/configs"
	"github.com/darklord813/gamevault/pkg/middleware"
)

// RegisterAll 将全部业务路由绑定到 gin 引擎:
//
//	/api/v1         公开接口（目录浏览、投票、分享解析、主题、登录）
//	/api/v1/admin   管理接口（目录维护、统计、分享管理、调度器），需要会话令牌
//
// listCache 只挂在无副作用的目录列表路由上，传 nil 则不缓存.
func RegisterAll(r *gin.Engine, cfg *configs.AppConfig, listCache gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	{
		RegisterGamesRoutes(v1, listCache)
		RegisterSharesRoutes(v1)
		RegisterAuthRoutes(v1)
		RegisterHealthCheckRoute(v1)
	}

	admin := v1.Group("/admin", middleware.AdminAuthMiddleware(cfg.Auth))
	{
		RegisterAdminGamesRoutes(admin)
		RegisterAdminSharesRoutes(admin)
		RegisterStatsRoutes(admin)
		RegisterSchedulerRoutes(admin)
	}
}
