// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/darklord813/gamevault/pkg/cache"
	"github.com/darklord813/gamevault/pkg/configs"
	"github.com/darklord813/gamevault/pkg/internal/jobs"
	"github.com/darklord813/gamevault/pkg/internal/router"
	"github.com/darklord813/gamevault/pkg/internal/storage"
	"github.com/darklord813/gamevault/pkg/log"
	"github.com/darklord813/gamevault/pkg/metrics"
	"github.com/darklord813/gamevault/pkg/middleware"
	"github.com/darklord813/gamevault/pkg/scheduler"
)

const (
	shutdownTimeout = 10 * time.Second
	listCacheTTL    = 15 * time.Second
)

// App 聚合 HTTP 引擎、存储与调度器，负责启动与优雅退出.
type App struct {
	Engine *gin.Engine

	config  *configs.AppConfig
	manager *storage.Manager
	sched   *scheduler.Scheduler
}

// NewApp 按固定顺序完成初始化: 配置 -> 指标 -> 存储 -> 调度器 -> 中间件 -> 路由.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(gin.Recovery())
	middleware.RegisterDefault(engine, config, manager, sched)

	// 目录列表的响应缓存，底层复用业务 KV
	cacheCfg := middleware.DefaultCacheConfig(cache.NewCache(manager.GetKVClient()))
	cacheCfg.TTL = listCacheTTL

	router.RegisterAll(engine, config, middleware.CacheMiddleware(cacheCfg))

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine:  engine,
		config:  config,
		manager: manager,
		sched:   sched,
	}
}

// Run 启动 HTTP 服务与调度器，收到 SIGINT/SIGTERM 后优雅退出.
func (a *App) Run() error {
	a.sched.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: time.Duration(a.config.Server.Timeout) * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Logger().Info().Str("addr", srv.Addr).Msg("gamevault listening")

	ctx, stop := signal.NotifyContext(contextPkg.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Logger().Info().Msg("shutting down")

	shutdownCtx, cancel := contextPkg.WithTimeout(contextPkg.Background(), shutdownTimeout)
	defer cancel()

	if err := a.sched.Shutdown(); err != nil {
		log.Logger().Error().Err(err).Msg("scheduler shutdown failed")
	}

	return srv.Shutdown(shutdownCtx)
}
