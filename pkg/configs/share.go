package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultShareBaseURL    = "https://darklord813.github.io" // 分享链接的站点前缀
	DefaultShareExpireDays = 30                              // 分享链接默认有效天数
	DefaultSharePurgeCron  = "0 4 * * *"                     // 过期链接清理定时任务
)

// ShareConfig 分享链接配置.
type ShareConfig struct {
	BaseURL    string `mapstructure:"base_url"    rule:"url"`
	ExpireDays int    `mapstructure:"expire_days" rule:"min=1,max=365"`
	PurgeCron  string `mapstructure:"purge_cron"`
}

// Horizon 返回分享链接的有效期作为 time.Duration.
func (c *ShareConfig) Horizon() time.Duration {
	return time.Duration(c.ExpireDays) * 24 * time.Hour
}

func (c *ShareConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("share.base_url", DefaultShareBaseURL)
	v.SetDefault("share.expire_days", DefaultShareExpireDays)
	v.SetDefault("share.purge_cron", DefaultSharePurgeCron)
}
