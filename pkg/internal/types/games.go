// Package types 定义 HTTP 层的请求与响应结构.
package types

import (
	"time"

	"github.com/darklord813/gamevault/pkg/internal/model"
)

// DownloadLinkInput 下载链接输入.
type DownloadLinkInput struct {
	// Label 链接的平台标签（如 MediaFire、直链），可与游戏平台不同
	Label string `form:"label" json:"label"`
	// URL 下载地址
	URL string `form:"url" json:"url" rule:"required"`
}

// SaveGameRequest 创建/更新游戏的请求体.
type SaveGameRequest struct {
	// Name 游戏名称
	Name string `form:"name" json:"name" rule:"required"`
	// Version 版本号，留空默认 1.0.0
	Version string `form:"version" json:"version"`
	// Genre 游戏类型
	Genre string `form:"genre" json:"genre" rule:"required"`
	// Platform 平台，留空默认 Android
	Platform string `form:"platform" json:"platform" rule:"omitempty,oneof=Android PC PSP PS2"`
	// Size 大小标签（如 500MB）
	Size string `form:"size" json:"size" rule:"required"`
	// Description 游戏简介
	Description string `form:"description" json:"description"`
	// ModInfo 修改内容说明
	ModInfo string `form:"mod_info" json:"mod_info" rule:"required"`
	// Image 封面图（data URI 或占位 URL），创建时必填，更新时留空沿用旧图
	Image string `form:"image" json:"image"`
	// DownloadLinks 下载链接，至少一条
	DownloadLinks []DownloadLinkInput `json:"download_links" rule:"min=1,dive"`
}

// GameFilter 目录筛选参数.
type GameFilter struct {
	// Platform 平台精确匹配
	Platform string `form:"platform" json:"platform"`
	// Genre 类型精确匹配
	Genre string `form:"genre" json:"genre"`
	// Search 名称子串匹配（不区分大小写）
	Search string `form:"search" json:"search"`
	// Newest 为真时按最新在前返回
	Newest bool `form:"newest" json:"newest"`
}

// GameResponse 单个游戏响应体.
type GameResponse struct {
	// Game 游戏记录
	Game model.Game `json:"game"`
	// Stars 平均分的星级展示拆分
	Stars model.StarRender `json:"stars"`
}

// ListGamesResponse 游戏列表响应体.
type ListGamesResponse struct {
	// Games 符合筛选条件的游戏
	Games []model.Game `json:"games"`
	// Total 返回的数量
	Total int `json:"total"`
}

// RecordDownloadRequest 下载计数请求体.
type RecordDownloadRequest struct {
	// Label 被点击的下载链接的平台标签，用于平台维度统计
	Label string `form:"label" json:"label"`
}

// CounterResponse 计数器响应体.
type CounterResponse struct {
	// GameID 目标游戏 ID
	GameID int64 `json:"game_id"`
	// Downloads 当前下载计数
	Downloads int64 `json:"downloads"`
	// Views 当前浏览计数
	Views int64 `json:"views"`
	// RecordedAt 本次计数时间
	RecordedAt time.Time `json:"recorded_at"`
}
