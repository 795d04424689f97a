// Package model 定义存储层的文档结构：游戏、评分聚合、分享链接与计数器.
package model

import (
	"time"
)

// 支持的游戏平台.
const (
	PlatformAndroid = "Android"
	PlatformPC      = "PC"
	PlatformPSP     = "PSP"
	PlatformPS2     = "PS2"
)

// Platforms 平台枚举，校验与筛选共用.
var Platforms = []string{PlatformAndroid, PlatformPC, PlatformPSP, PlatformPS2}

const (
	// DefaultVersion 版本号留空时的默认值.
	DefaultVersion = "1.0.0"
	// DefaultPlatform 平台留空时的默认值.
	DefaultPlatform = PlatformAndroid
)

// DownloadLink 游戏下载链接，Label 为链接的平台标签（可能与游戏平台不同，如网盘名）.
type DownloadLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Game 游戏记录，ID 为创建时间戳（毫秒），目录内唯一.
// Rating/Votes/Distribution 为评分聚合的派生字段，仅由评分引擎回写.
type Game struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Version       string         `json:"version"`
	Genre         string         `json:"genre"`
	Platform      string         `json:"platform"`
	Size          string         `json:"size"`
	Description   string         `json:"description"`
	ModInfo       string         `json:"mod_info"`
	Image         string         `json:"image"`
	DownloadLinks []DownloadLink `json:"download_links"`
	Downloads     int64          `json:"downloads"`
	Views         int64          `json:"views"`
	Rating        float64        `json:"rating"`
	Votes         int            `json:"votes"`
	Distribution  [5]int         `json:"rating_distribution"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

// Normalize 在存储边界统一填充默认值，避免读取侧零散的默认处理.
func (g *Game) Normalize() {
	if g.Version == "" {
		g.Version = DefaultVersion
	}

	if g.Platform == "" {
		g.Platform = DefaultPlatform
	}

	if g.DownloadLinks == nil {
		g.DownloadLinks = []DownloadLink{}
	}
}

// ValidPlatform 检查平台是否在枚举内.
func ValidPlatform(p string) bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}

	return false
}
