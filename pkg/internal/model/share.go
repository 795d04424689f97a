package model

import (
	"time"
)

// ShareLink 指向单个游戏的限时访问令牌.
type ShareLink struct {
	Code         string     `json:"code"`
	GameID       int64      `json:"game_id"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Views        int64      `json:"views"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

// IsExpired 检查链接在给定时刻是否已过期.
func (s *ShareLink) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
