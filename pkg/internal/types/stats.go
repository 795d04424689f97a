package types

// StatsSummary 目录总体统计.
type StatsSummary struct {
	TotalGames     int   `json:"total_games"`
	TotalDownloads int64 `json:"total_downloads"`
	TotalViews     int64 `json:"total_views"`
	TotalVotes     int   `json:"total_votes"`
	TotalShares    int   `json:"total_shares"`
}

// StatsPlatformItem 按下载链接平台标签聚合的下载量.
type StatsPlatformItem struct {
	Label     string `json:"label"`
	Downloads int64  `json:"downloads"`
}

// StatsRatingItem 单个游戏的评分统计.
type StatsRatingItem struct {
	GameID       int64   `json:"game_id"`
	Name         string  `json:"name"`
	Average      float64 `json:"average"`
	Votes        int     `json:"votes"`
	Distribution [5]int  `json:"distribution"`
}

// StatsTopItem 排行项（按下载或浏览）.
type StatsTopItem struct {
	GameID    int64  `json:"game_id"`
	Name      string `json:"name"`
	Downloads int64  `json:"downloads"`
	Views     int64  `json:"views"`
}

// StatsSummaryResponse 统计总览响应体.
type StatsSummaryResponse struct {
	Summary StatsSummary `json:"summary"`
}

// StatsPlatformsResponse 平台下载统计响应体.
type StatsPlatformsResponse struct {
	Platforms []StatsPlatformItem `json:"platforms"`
}

// StatsRatingsResponse 评分统计响应体.
type StatsRatingsResponse struct {
	Ratings []StatsRatingItem `json:"ratings"`
}

// StatsTopResponse 排行榜响应体.
type StatsTopResponse struct {
	Top []StatsTopItem `json:"top"`
}
