package model

import (
	"time"
)

// AdminSession 管理员登录会话，过期时间由登录时刻加固定有效期得出.
type AdminSession struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	LoggedIn  time.Time `json:"logged_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid 检查会话在给定时刻是否有效.
func (s *AdminSession) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}
