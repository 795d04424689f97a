// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/darklord813/gamevault/pkg/configs"
	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/service"
	"github.com/darklord813/gamevault/pkg/internal/storage"
	"github.com/darklord813/gamevault/pkg/log"
	"github.com/darklord813/gamevault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 按 share.purge_cron（默认每天 04:00）清理过期分享链接
//   - 每天 03:30 回写全部游戏的派生评分字段，修复可能的聚合漂移
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	purgeCron := configs.GetConfig().Share.PurgeCron

	if err := sched.AddCron(JobSharePurge, purgeCron, runSharePurge, baseCtx); err != nil {
		return fmt.Errorf("register %s: %w", JobSharePurge, err)
	}

	if err := sched.AddCron(JobRatingRecompute, CronRatingRecompute, runRatingRecompute, baseCtx); err != nil {
		return fmt.Errorf("register %s: %w", JobRatingRecompute, err)
	}

	return nil
}

// runSharePurge 删除所有已过期的分享链接。
func runSharePurge(ctx context.Context) {
	l := log.Logger().With().Str("job", JobSharePurge).Logger()

	svc := service.NewShareService(ctx)

	n, err := svc.PurgeExpired(ctx)
	if err != nil {
		l.Error().Err(err).Msg("purge expired share links failed")
		return
	}

	if n > 0 {
		l.Info().Int("purged", n).Msg("purged expired share links")
	}
}

// runRatingRecompute 针对每个游戏重新计算平均分、票数与分布并回写目录。
func runRatingRecompute(ctx context.Context) {
	l := log.Logger().With().Str("job", JobRatingRecompute).Logger()

	catalog := service.NewCatalogService(ctx)
	rating := service.NewRatingService(ctx)

	for _, g := range catalog.List(ctx, nil) {
		if err := rating.RecomputeGameRating(ctx, g.ID); err != nil {
			l.Error().Err(err).Int64("game_id", g.ID).Msg("recompute rating failed")
		}
	}
}
