package types

import (
	"time"

	"github.com/darklord813/gamevault/pkg/internal/model"
)

// ShareInfo 分享链接的公开信息.
type ShareInfo struct {
	// Code 分享码（URL 公开使用）
	Code string `json:"code"`
	// GameID 目标游戏 ID
	GameID int64 `json:"game_id"`
	// URL 嵌入分享码的完整链接
	URL string `json:"url"`
	// CreatedAt 创建时间（UTC）
	CreatedAt time.Time `json:"created_at"`
	// ExpiresAt 过期时间（UTC，创建时刻加固定有效期）
	ExpiresAt time.Time `json:"expires_at"`
	// Views 访问计数
	Views int64 `json:"views"`
	// LastAccessed 最近访问时间
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

// CreateShareResponse 创建分享的响应体.
type CreateShareResponse struct {
	// Share 新建的分享信息
	Share ShareInfo `json:"share"`
}

// ResolveShareResponse 分享码解析响应体.
type ResolveShareResponse struct {
	// Game 分享指向的游戏
	Game model.Game `json:"game"`
	// Share 分享信息（访问计数已更新）
	Share ShareInfo `json:"share"`
}

// ListSharesResponse 分享列表响应体.
type ListSharesResponse struct {
	// Shares 当前全部分享链接
	Shares []ShareInfo `json:"shares"`
}
