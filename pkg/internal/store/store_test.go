package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/darklord813/gamevault/pkg/internal/model"
	kvc "github.com/darklord813/gamevault/pkg/internal/storage/kv"
	"github.com/darklord813/gamevault/pkg/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *kvc.Client) {
	t.Helper()

	mem, err := kvc.NewKVStore(context.Background(), kvc.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	client := &kvc.Client{KVStore: mem}

	return store.New(client), client
}

func TestGamesRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	games := []model.Game{
		{
			ID:            1717236000000,
			Name:          "Dragon Quest",
			Genre:         "RPG",
			Platform:      model.PlatformPSP,
			Size:          "500MB",
			DownloadLinks: []model.DownloadLink{{Label: "MediaFire", URL: "https://example.com/dq"}},
			CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	if err := s.SaveGames(ctx, games); err != nil {
		t.Fatalf("save games: %v", err)
	}

	got := s.LoadGames(ctx)
	if len(got) != 1 {
		t.Fatalf("got %d games, want 1", len(got))
	}

	if got[0].Name != "Dragon Quest" || got[0].Platform != model.PlatformPSP {
		t.Fatalf("got %+v", got[0])
	}

	// 存储边界统一补默认值
	if got[0].Version != model.DefaultVersion {
		t.Fatalf("version = %q, want default %q", got[0].Version, model.DefaultVersion)
	}
}

func TestLoadMissingReturnsEmptyDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if games := s.LoadGames(ctx); len(games) != 0 {
		t.Fatalf("games = %v, want empty", games)
	}

	if aggs := s.LoadAggregates(ctx); len(aggs) != 0 {
		t.Fatalf("aggregates = %v, want empty", aggs)
	}

	if links := s.LoadShareLinks(ctx); len(links) != 0 {
		t.Fatalf("share links = %v, want empty", links)
	}

	if theme := s.LoadTheme(ctx); theme.Theme != model.ThemeLight {
		t.Fatalf("theme = %q, want light default", theme.Theme)
	}
}

func TestLoadMalformedTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	s, client := newTestStore(t)

	// 写入无法解析的内容，读取侧应静默降级为空集合
	if err := client.Set(ctx, store.Key(store.ColGames), []byte("{not json"), 0); err != nil {
		t.Fatalf("set raw: %v", err)
	}

	if games := s.LoadGames(ctx); len(games) != 0 {
		t.Fatalf("games = %v, want empty on malformed data", games)
	}
}

func TestAggregatesRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	agg := model.NewAggregate()
	agg.Apply("user-a", 5, time.Now())
	agg.Apply("user-b", 3, time.Now())

	if err := s.SaveAggregates(ctx, map[string]*model.Aggregate{"1717236000000": agg}); err != nil {
		t.Fatalf("save aggregates: %v", err)
	}

	got := s.LoadAggregates(ctx)

	loaded, ok := got["1717236000000"]
	if !ok {
		t.Fatalf("aggregate missing: %v", got)
	}

	if loaded.Total != 2 || loaded.Sum != 8 {
		t.Fatalf("total=%d sum=%d, want 2, 8", loaded.Total, loaded.Sum)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	now := time.Now()
	sess := model.AdminSession{
		Token:     "tok",
		Username:  "pspgamers",
		LoggedIn:  now,
		ExpiresAt: now.Add(8 * time.Hour),
	}

	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}

	if got := s.LoadSession(ctx); !got.Valid(now) {
		t.Fatalf("session should be valid: %+v", got)
	}

	if err := s.DeleteSession(ctx); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	if got := s.LoadSession(ctx); got.Valid(now) {
		t.Fatal("session should be gone after delete")
	}
}
