package service

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid"

	"github.com/darklord813/gamevault/pkg/configs"
	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/store"
	"github.com/darklord813/gamevault/pkg/internal/types"
	nlog "github.com/darklord813/gamevault/pkg/log"
	"github.com/darklord813/gamevault/pkg/metrics"
)

// 全局单例的 ULID 熵源，使用单调递增策略，确保同一毫秒内生成的 ULID 具有排序稳定性。
var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// ShareService 负责限时分享链接：创建、解析、清理.
type ShareService struct {
	st  *store.Store
	now func() time.Time
}

// NewShareService 创建并返回一个新的 ShareService 实例.
func NewShareService(c context.Context) *ShareService {
	kvc := ctxPkg.GetKVClient(c)
	if kvc == nil {
		nlog.Logger().Warn().Msg("KV client not initialized, ShareService features limited")
	}

	return &ShareService{
		st:  store.New(kvc),
		now: time.Now,
	}
}

// newShareCode 生成分享码，形如 "sh_<gameID>_<ULID>"：按构造唯一，无需查重.
func newShareCode(gameID int64, t time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(t), ulidEntropy)
	return fmt.Sprintf("sh_%d_%s", gameID, id.String())
}

// shareURL 拼接嵌入分享码的完整链接.
func shareURL(code string) string {
	base := configs.GetConfig().Share.BaseURL
	return fmt.Sprintf("%s/game?share=%s", base, code)
}

// CreateLink 为游戏创建新的分享链接；每次调用都铸造新码，有意不幂等.
func (s *ShareService) CreateLink(ctx context.Context, gameID int64) (*types.CreateShareResponse, error) {
	games := s.st.LoadGames(ctx)
	if !containsID(games, gameID) {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}

	now := s.now().UTC()
	link := model.ShareLink{
		Code:      newShareCode(gameID, now),
		GameID:    gameID,
		CreatedAt: now,
		ExpiresAt: now.Add(configs.GetConfig().Share.Horizon()),
	}

	links := s.st.LoadShareLinks(ctx)
	links[link.Code] = link

	if err := s.st.SaveShareLinks(ctx, links); err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("code", link.Code).Int64("game_id", gameID).Msg("share link created")

	return &types.CreateShareResponse{Share: toShareInfo(link)}, nil
}

// Resolve 解析分享码：过期或目标游戏已删除的链接在解析时顺带删除.
func (s *ShareService) Resolve(ctx context.Context, code string) (*types.ResolveShareResponse, error) {
	links := s.st.LoadShareLinks(ctx)

	link, ok := links[code]
	if !ok {
		metrics.ShareResolveCounter.WithLabelValues("missing").Inc()
		return nil, fmt.Errorf("share %s: %w", code, ErrNotFound)
	}

	now := s.now().UTC()

	if link.IsExpired(now) {
		delete(links, code)
		_ = s.st.SaveShareLinks(ctx, links)
		metrics.ShareResolveCounter.WithLabelValues("expired").Inc()

		return nil, fmt.Errorf("share %s: %w", code, ErrExpired)
	}

	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, link.GameID)
	if idx < 0 {
		// 目标游戏已删除，悬空链接按不存在处理并清理
		delete(links, code)
		_ = s.st.SaveShareLinks(ctx, links)
		metrics.ShareResolveCounter.WithLabelValues("missing").Inc()

		return nil, fmt.Errorf("share %s: %w", code, ErrNotFound)
	}

	link.Views++
	link.LastAccessed = &now
	links[code] = link

	if err := s.st.SaveShareLinks(ctx, links); err != nil {
		return nil, err
	}

	access := s.st.LoadShareAccess(ctx)
	access[code]++

	if err := s.st.SaveShareAccess(ctx, access); err != nil {
		return nil, err
	}

	// 经分享进站也算一次游戏浏览
	games[idx].Views++
	if err := s.st.SaveGames(ctx, games); err != nil {
		return nil, err
	}

	viewCounters := s.st.LoadViewCounters(ctx)
	viewCounters[link.GameID]++

	if err := s.st.SaveViewCounters(ctx, viewCounters); err != nil {
		return nil, err
	}

	metrics.ShareResolveCounter.WithLabelValues("hit").Inc()

	return &types.ResolveShareResponse{
		Game:  games[idx],
		Share: toShareInfo(link),
	}, nil
}

// PurgeForGame 删除指向指定游戏的全部分享链接，返回删除数量.
func (s *ShareService) PurgeForGame(ctx context.Context, gameID int64) (int, error) {
	links := s.st.LoadShareLinks(ctx)

	purged := 0

	for code, link := range links {
		if link.GameID == gameID {
			delete(links, code)

			purged++
		}
	}

	if purged > 0 {
		if err := s.st.SaveShareLinks(ctx, links); err != nil {
			return 0, err
		}
	}

	return purged, nil
}

// PurgeExpired 删除所有已过期的分享链接，返回删除数量.定时任务调用.
func (s *ShareService) PurgeExpired(ctx context.Context) (int, error) {
	links := s.st.LoadShareLinks(ctx)
	now := s.now().UTC()

	purged := 0

	for code, link := range links {
		if link.IsExpired(now) {
			delete(links, code)

			purged++
		}
	}

	if purged > 0 {
		if err := s.st.SaveShareLinks(ctx, links); err != nil {
			return 0, err
		}

		nlog.Logger().Info().Int("purged", purged).Msg("expired share links purged")
	}

	return purged, nil
}

// ListShares 返回全部分享链接，按创建时间降序.
func (s *ShareService) ListShares(ctx context.Context) *types.ListSharesResponse {
	links := s.st.LoadShareLinks(ctx)

	shares := make([]types.ShareInfo, 0, len(links))
	for _, link := range links {
		shares = append(shares, toShareInfo(link))
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].CreatedAt.After(shares[j].CreatedAt)
	})

	return &types.ListSharesResponse{Shares: shares}
}

// DeleteShare 删除指定分享码.
func (s *ShareService) DeleteShare(ctx context.Context, code string) error {
	links := s.st.LoadShareLinks(ctx)

	if _, ok := links[code]; !ok {
		return fmt.Errorf("share %s: %w", code, ErrNotFound)
	}

	delete(links, code)

	return s.st.SaveShareLinks(ctx, links)
}

// toShareInfo 转换为对外的 ShareInfo 结构.
func toShareInfo(link model.ShareLink) types.ShareInfo {
	return types.ShareInfo{
		Code:         link.Code,
		GameID:       link.GameID,
		URL:          shareURL(link.Code),
		CreatedAt:    link.CreatedAt,
		ExpiresAt:    link.ExpiresAt,
		Views:        link.Views,
		LastAccessed: link.LastAccessed,
	}
}
