package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/store"
	"github.com/darklord813/gamevault/pkg/internal/types"
	nlog "github.com/darklord813/gamevault/pkg/log"
	"github.com/darklord813/gamevault/pkg/metrics"
)

// SubjectFeatured 非游戏的固定评分主题（首页精选位）.
const SubjectFeatured = "featured"

// RatingService 负责评分聚合：投票、查询与目录派生字段回写.
type RatingService struct {
	st  *store.Store
	now func() time.Time
}

// NewRatingService 创建并返回一个新的 RatingService 实例.
func NewRatingService(c context.Context) *RatingService {
	kvc := ctxPkg.GetKVClient(c)
	if kvc == nil {
		nlog.Logger().Warn().Msg("KV client not initialized, RatingService features limited")
	}

	return &RatingService{
		st:  store.New(kvc),
		now: time.Now,
	}
}

// subjectID 游戏 ID 到评分主题键的映射.
func subjectID(gameID int64) string {
	return strconv.FormatInt(gameID, 10)
}

// parseGameSubject 尝试把主题键解析为游戏 ID，哨兵主题返回 false.
func parseGameSubject(subject string) (int64, bool) {
	if subject == SubjectFeatured {
		return 0, false
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// Vote 记录一次投票：同一用户对同一主题重复投票按差值原地调整.
// 投票成功后同步把派生字段回写到目录中的游戏记录.
func (s *RatingService) Vote(ctx context.Context, subject, userID string, rating int) (*types.AggregateResponse, error) {
	if rating < 1 || rating > 5 {
		return nil, NewValidationError("rating", "must be between 1 and 5")
	}

	gameID, isGame := parseGameSubject(subject)
	if !isGame && subject != SubjectFeatured {
		return nil, NewValidationError("subject", "must be a game id or the featured sentinel")
	}

	if isGame {
		games := s.st.LoadGames(ctx)
		if !containsID(games, gameID) {
			return nil, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
		}
	}

	// 匿名用户标识缺失时由服务端生成，随响应返回供客户端持久化
	if userID == "" {
		userID = uuid.NewString()
	}

	aggs := s.st.LoadAggregates(ctx)

	agg, ok := aggs[subject]
	if !ok || agg == nil {
		agg = model.NewAggregate()
		aggs[subject] = agg
	}

	agg.Apply(userID, rating, s.now().UTC())

	if err := s.st.SaveAggregates(ctx, aggs); err != nil {
		return nil, err
	}

	if isGame {
		if err := s.RecomputeGameRating(ctx, gameID); err != nil {
			return nil, err
		}
	}

	subjectKind := "game"
	if !isGame {
		subjectKind = SubjectFeatured
	}

	metrics.VoteCounter.WithLabelValues(subjectKind).Inc()

	nlog.Logger().Debug().
		Str("subject", subject).
		Int("rating", rating).
		Int("total", agg.Total).
		Msg("vote recorded")

	return s.aggregateResponse(subject, userID, agg), nil
}

// GetAggregate 只读查询主题的评分聚合，未评分主题返回零聚合.
func (s *RatingService) GetAggregate(ctx context.Context, subject, userID string) *types.AggregateResponse {
	aggs := s.st.LoadAggregates(ctx)

	agg, ok := aggs[subject]
	if !ok || agg == nil {
		agg = model.NewAggregate()
	}

	return s.aggregateResponse(subject, userID, agg)
}

// RecomputeGameRating 把主题聚合的派生字段（平均分、票数、分布）回写到游戏记录.
// 可独立调用以修复或回填目录数据.
func (s *RatingService) RecomputeGameRating(ctx context.Context, gameID int64) error {
	aggs := s.st.LoadAggregates(ctx)

	agg, ok := aggs[subjectID(gameID)]
	if !ok || agg == nil {
		agg = model.NewAggregate()
	}

	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, gameID)
	if idx < 0 {
		return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}

	games[idx].Rating = agg.Average()
	games[idx].Votes = agg.Total
	games[idx].Distribution = agg.Distribution

	return s.st.SaveGames(ctx, games)
}

func (s *RatingService) aggregateResponse(subject, userID string, agg *model.Aggregate) *types.AggregateResponse {
	resp := &types.AggregateResponse{
		SubjectID:    subject,
		Total:        agg.Total,
		Average:      agg.Average(),
		Distribution: agg.Distribution,
		Stars:        model.RenderStars(agg.Average()),
		UserID:       userID,
	}

	if userID != "" {
		resp.UserRating = agg.UserRating(userID)
	}

	return resp
}
