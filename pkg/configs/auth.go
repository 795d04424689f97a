package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAuthUsername   = "pspgamers" // 默认管理员用户名
	DefaultAuthPassword   = "admin2025" // 默认管理员密码
	DefaultSessionHours   = 8           // 会话有效期，单位小时
	DefaultSessionEnabled = true        // 是否启用管理后台认证
)

// AuthConfig 管理员登录与会话配置.
type AuthConfig struct {
	Enabled      bool   `mapstructure:"enabled"`       // 开启认证校验
	Username     string `mapstructure:"username"      rule:"required"`
	Password     string `mapstructure:"password"      rule:"required"`
	SessionHours int    `mapstructure:"session_hours" rule:"min=1,max=168"`
}

// SessionTTL 返回会话有效期作为 time.Duration.
func (c *AuthConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionHours) * time.Hour
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", DefaultSessionEnabled)
	v.SetDefault("auth.username", DefaultAuthUsername)
	v.SetDefault("auth.password", DefaultAuthPassword)
	v.SetDefault("auth.session_hours", DefaultSessionHours)
}
