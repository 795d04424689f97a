// Package store 在 KV 之上提供集合级读写：每个集合整体序列化为一个键.
// 读取时缺失或损坏的数据一律降级为空默认值，调用方不会看到解析错误.
package store

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/darklord813/gamevault/pkg/internal/model"
	kvc "github.com/darklord813/gamevault/pkg/internal/storage/kv"
)

// Namespace 所有集合键的前缀，版本号便于未来迁移.
const Namespace = "gamevault:v1:"

// 集合名.
const (
	ColGames             = "games"
	ColRatings           = "ratings"
	ColShareLinks        = "share_links"
	ColViewCounters      = "game_views"
	ColPlatformDownloads = "platform_downloads"
	ColShareAccess       = "share_access"
	ColTheme             = "theme"
	ColAdminSession      = "admin_session"
)

// Store 集合级持久化，整读整写，无部分更新.
type Store struct {
	kv *kvc.Client
}

// New 创建 Store 实例.
func New(kv *kvc.Client) *Store {
	return &Store{kv: kv}
}

// Key 返回集合的完整存储键.
func Key(collection string) string {
	return Namespace + collection
}

// load 读取集合并反序列化到临时值，仅在成功时赋值，损坏数据等同缺失.
func load[T any](ctx context.Context, s *Store, collection string, def T) T {
	raw, err := s.kv.Get(ctx, Key(collection))
	if err != nil {
		return def
	}

	var tmp T
	if err := sonic.Unmarshal(raw, &tmp); err != nil {
		return def
	}

	return tmp
}

// save 序列化并整体覆盖集合.
func save[T any](ctx context.Context, s *Store, collection string, value T) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}

	if err := s.kv.Set(ctx, Key(collection), raw, 0); err != nil {
		return fmt.Errorf("save collection %s: %w", collection, err)
	}

	return nil
}

// LoadGames 读取游戏列表，保持插入顺序.
func (s *Store) LoadGames(ctx context.Context) []model.Game {
	games := load(ctx, s, ColGames, []model.Game{})
	for i := range games {
		games[i].Normalize()
	}

	return games
}

// SaveGames 覆盖游戏列表.
func (s *Store) SaveGames(ctx context.Context, games []model.Game) error {
	return save(ctx, s, ColGames, games)
}

// LoadAggregates 读取评分聚合，键为主题 ID（游戏 ID 的十进制串或固定哨兵）.
func (s *Store) LoadAggregates(ctx context.Context) map[string]*model.Aggregate {
	return load(ctx, s, ColRatings, map[string]*model.Aggregate{})
}

// SaveAggregates 覆盖评分聚合.
func (s *Store) SaveAggregates(ctx context.Context, aggs map[string]*model.Aggregate) error {
	return save(ctx, s, ColRatings, aggs)
}

// LoadShareLinks 读取分享链接，键为分享码.
func (s *Store) LoadShareLinks(ctx context.Context) map[string]model.ShareLink {
	return load(ctx, s, ColShareLinks, map[string]model.ShareLink{})
}

// SaveShareLinks 覆盖分享链接.
func (s *Store) SaveShareLinks(ctx context.Context, links map[string]model.ShareLink) error {
	return save(ctx, s, ColShareLinks, links)
}

// LoadViewCounters 读取按游戏的浏览计数.
func (s *Store) LoadViewCounters(ctx context.Context) model.ViewCounters {
	return load(ctx, s, ColViewCounters, model.ViewCounters{})
}

// SaveViewCounters 覆盖浏览计数.
func (s *Store) SaveViewCounters(ctx context.Context, counters model.ViewCounters) error {
	return save(ctx, s, ColViewCounters, counters)
}

// LoadPlatformDownloads 读取按链接平台标签的下载计数.
func (s *Store) LoadPlatformDownloads(ctx context.Context) model.PlatformDownloads {
	return load(ctx, s, ColPlatformDownloads, model.PlatformDownloads{})
}

// SavePlatformDownloads 覆盖平台下载计数.
func (s *Store) SavePlatformDownloads(ctx context.Context, counters model.PlatformDownloads) error {
	return save(ctx, s, ColPlatformDownloads, counters)
}

// LoadShareAccess 读取按分享码的访问计数.
func (s *Store) LoadShareAccess(ctx context.Context) model.ShareAccess {
	return load(ctx, s, ColShareAccess, model.ShareAccess{})
}

// SaveShareAccess 覆盖分享访问计数.
func (s *Store) SaveShareAccess(ctx context.Context, counters model.ShareAccess) error {
	return save(ctx, s, ColShareAccess, counters)
}

// LoadTheme 读取主题偏好，缺省为亮色.
func (s *Store) LoadTheme(ctx context.Context) model.ThemePreference {
	return load(ctx, s, ColTheme, model.ThemePreference{Theme: model.ThemeLight})
}

// SaveTheme 覆盖主题偏好.
func (s *Store) SaveTheme(ctx context.Context, pref model.ThemePreference) error {
	return save(ctx, s, ColTheme, pref)
}

// LoadSession 读取管理员会话，缺失返回零值会话.
func (s *Store) LoadSession(ctx context.Context) model.AdminSession {
	return load(ctx, s, ColAdminSession, model.AdminSession{})
}

// SaveSession 覆盖管理员会话.
func (s *Store) SaveSession(ctx context.Context, sess model.AdminSession) error {
	return save(ctx, s, ColAdminSession, sess)
}

// DeleteSession 删除管理员会话.
func (s *Store) DeleteSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key(ColAdminSession)); err != nil {
		return fmt.Errorf("delete collection %s: %w", ColAdminSession, err)
	}

	return nil
}
