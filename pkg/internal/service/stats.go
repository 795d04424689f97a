package service

import (
	"context"
	"sort"

	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/store"
	"github.com/darklord813/gamevault/pkg/internal/types"
	nlog "github.com/darklord813/gamevault/pkg/log"
)

// StatsService 负责目录的聚合统计，全部从存储集合派生，无独立状态.
type StatsService struct {
	st *store.Store
}

// NewStatsService 创建并返回一个新的 StatsService 实例.
func NewStatsService(c context.Context) *StatsService {
	kvc := ctxPkg.GetKVClient(c)
	if kvc == nil {
		nlog.Logger().Warn().Msg("KV client not initialized, StatsService features limited")
	}

	return &StatsService{st: store.New(kvc)}
}

// Summary 目录总览：游戏数、下载、浏览、投票与分享总量.
func (s *StatsService) Summary(ctx context.Context) *types.StatsSummaryResponse {
	games := s.st.LoadGames(ctx)
	aggs := s.st.LoadAggregates(ctx)
	links := s.st.LoadShareLinks(ctx)

	sum := types.StatsSummary{
		TotalGames:  len(games),
		TotalShares: len(links),
	}

	for _, g := range games {
		sum.TotalDownloads += g.Downloads
		sum.TotalViews += g.Views
	}

	for _, agg := range aggs {
		if agg != nil {
			sum.TotalVotes += agg.Total
		}
	}

	return &types.StatsSummaryResponse{Summary: sum}
}

// Platforms 按下载链接平台标签的下载量，降序.
func (s *StatsService) Platforms(ctx context.Context) *types.StatsPlatformsResponse {
	counters := s.st.LoadPlatformDownloads(ctx)

	items := make([]types.StatsPlatformItem, 0, len(counters))
	for label, n := range counters {
		items = append(items, types.StatsPlatformItem{Label: label, Downloads: n})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Downloads != items[j].Downloads {
			return items[i].Downloads > items[j].Downloads
		}

		return items[i].Label < items[j].Label
	})

	return &types.StatsPlatformsResponse{Platforms: items}
}

// Ratings 每个游戏的评分统计，按平均分降序.
func (s *StatsService) Ratings(ctx context.Context) *types.StatsRatingsResponse {
	games := s.st.LoadGames(ctx)
	aggs := s.st.LoadAggregates(ctx)

	items := make([]types.StatsRatingItem, 0, len(games))

	for _, g := range games {
		item := types.StatsRatingItem{
			GameID: g.ID,
			Name:   g.Name,
		}

		if agg, ok := aggs[subjectID(g.ID)]; ok && agg != nil {
			item.Average = agg.Average()
			item.Votes = agg.Total
			item.Distribution = agg.Distribution
		}

		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Average != items[j].Average {
			return items[i].Average > items[j].Average
		}

		return items[i].Votes > items[j].Votes
	})

	return &types.StatsRatingsResponse{Ratings: items}
}

// Top 排行榜：by 取 "downloads" 或 "views"，limit <= 0 时返回全部.
func (s *StatsService) Top(ctx context.Context, by string, limit int) *types.StatsTopResponse {
	games := s.st.LoadGames(ctx)

	items := make([]types.StatsTopItem, 0, len(games))
	for _, g := range games {
		items = append(items, types.StatsTopItem{
			GameID:    g.ID,
			Name:      g.Name,
			Downloads: g.Downloads,
			Views:     g.Views,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if by == "views" {
			return items[i].Views > items[j].Views
		}

		return items[i].Downloads > items[j].Downloads
	})

	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return &types.StatsTopResponse{Top: items}
}
