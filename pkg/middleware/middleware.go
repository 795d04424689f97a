// Package middleware 提供中间件
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/configs"
	"github.com/darklord813/gamevault/pkg/internal/storage"
	"github.com/darklord813/gamevault/pkg/scheduler"
)

// RegisterDefault 按固定顺序挂载全局中间件:
// 日志 -> CORS -> 压缩 -> 限流 -> Prometheus -> 存储注入 -> 调度器注入.
func RegisterDefault(r *gin.Engine, cfg *configs.AppConfig, manager *storage.Manager, sched *scheduler.Scheduler) {
	r.Use(GinLoggerMiddleware())
	r.Use(CORSMiddleware(cfg.Server))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(RateLimitMiddleware(cfg.RateLimit))

	if cfg.Metrics.Enabled {
		r.Use(PrometheusMiddleware())
	}

	r.Use(StorageMiddleware(manager))

	if sched != nil {
		r.Use(SchedulerMiddleware(sched))
	}
}
