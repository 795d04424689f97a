package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobSharePurge      = "share.purge_expired"
	JobRatingRecompute = "rating.recompute_derived"
)

// Cron 表达式常量（分享清理的表达式来自配置 share.purge_cron）.
const (
	// CronRatingRecompute 每天 03:30 回写全部游戏的派生评分字段.
	CronRatingRecompute = "30 3 * * *"
)
