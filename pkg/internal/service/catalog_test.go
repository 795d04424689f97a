package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/types"
)

func TestCatalogCreate(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	game, err := svc.Create(ctx, validGameRequest("Test Game"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if game.ID == 0 {
		t.Fatal("id must be assigned")
	}

	if game.Version != model.DefaultVersion {
		t.Fatalf("version = %q, want default", game.Version)
	}

	if game.Downloads != 0 || game.Views != 0 || game.Votes != 0 || game.Rating != 0 {
		t.Fatalf("counters must start at zero: %+v", game)
	}

	listed := svc.List(ctx, nil)
	if len(listed) != 1 || listed[0].Name != "Test Game" {
		t.Fatalf("list = %+v, want the created game", listed)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	tests := []struct {
		name   string
		mutate func(*types.SaveGameRequest)
	}{
		{"missing name", func(r *types.SaveGameRequest) { r.Name = "" }},
		{"missing genre", func(r *types.SaveGameRequest) { r.Genre = "" }},
		{"missing size", func(r *types.SaveGameRequest) { r.Size = "" }},
		{"missing mod info", func(r *types.SaveGameRequest) { r.ModInfo = "" }},
		{"blank name", func(r *types.SaveGameRequest) { r.Name = "   " }},
		{"blank genre", func(r *types.SaveGameRequest) { r.Genre = " " }},
		{"blank size", func(r *types.SaveGameRequest) { r.Size = "\t" }},
		{"blank mod info", func(r *types.SaveGameRequest) { r.ModInfo = "  " }},
		{"missing image", func(r *types.SaveGameRequest) { r.Image = "" }},
		{"no download links", func(r *types.SaveGameRequest) { r.DownloadLinks = nil }},
		{"blank link url", func(r *types.SaveGameRequest) { r.DownloadLinks[0].URL = "  " }},
		{"bad platform", func(r *types.SaveGameRequest) { r.Platform = "Dreamcast" }},
		{"non-image data uri", func(r *types.SaveGameRequest) { r.Image = "data:text/html;base64,xxxx" }},
		{"malformed data uri", func(r *types.SaveGameRequest) { r.Image = "data:image/png" }},
		{"oversized image", func(r *types.SaveGameRequest) {
			r.Image = "data:image/png;base64," + strings.Repeat("A", 3<<20)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validGameRequest("Bad Game")
			tt.mutate(req)

			if _, err := svc.Create(ctx, req); !IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}

	// 校验失败不得留下部分状态
	if games := svc.List(ctx, nil); len(games) != 0 {
		t.Fatalf("catalog must stay empty, got %d games", len(games))
	}
}

func TestCatalogIDCollisionBumps(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	now, _ := fixedClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	svc.now = now

	a, err := svc.Create(ctx, validGameRequest("First"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}

	// 时钟不动，第二次创建落在同一毫秒
	b, err := svc.Create(ctx, validGameRequest("Second"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if a.ID == b.ID {
		t.Fatalf("ids must differ, both %d", a.ID)
	}
}

func TestCatalogUpdatePreservesCountersAndID(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	game, err := svc.Create(ctx, validGameRequest("Original"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 制造非零计数与评分派生字段
	if _, err := svc.RecordDownload(ctx, game.ID, "MediaFire"); err != nil {
		t.Fatalf("record download: %v", err)
	}

	if _, err := svc.RecordView(ctx, game.ID); err != nil {
		t.Fatalf("record view: %v", err)
	}

	rsvc := NewRatingService(ctx)
	if _, err := rsvc.Vote(ctx, subjectID(game.ID), "user-a", 4); err != nil {
		t.Fatalf("vote: %v", err)
	}

	req := validGameRequest("Renamed")
	req.Image = "" // 更新时允许留空，沿用旧图
	req.Genre = "RPG"

	updated, err := svc.Update(ctx, game.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != game.ID {
		t.Fatalf("id changed: %d -> %d", game.ID, updated.ID)
	}

	if updated.Name != "Renamed" || updated.Genre != "RPG" {
		t.Fatalf("editable fields not overwritten: %+v", updated)
	}

	if updated.Downloads != 1 || updated.Views != 1 || updated.Votes != 1 || updated.Rating != 4.0 {
		t.Fatalf("counters/derived fields not preserved: %+v", updated)
	}

	if updated.Image != game.Image {
		t.Fatalf("image = %q, want prior image", updated.Image)
	}

	if !updated.CreatedAt.Equal(game.CreatedAt) {
		t.Fatal("creation timestamp must be preserved")
	}

	if updated.UpdatedAt == nil {
		t.Fatal("updated_at must be set")
	}
}

func TestCatalogUpdateNotFound(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	if _, err := svc.Update(ctx, 42, validGameRequest("Ghost")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalogDeleteCascades(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)
	shareSvc := NewShareService(ctx)
	ratingSvc := NewRatingService(ctx)

	game, err := svc.Create(ctx, validGameRequest("Doomed"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created, err := shareSvc.CreateLink(ctx, game.ID)
	if err != nil {
		t.Fatalf("create link: %v", err)
	}

	if _, err := ratingSvc.Vote(ctx, subjectID(game.ID), "user-a", 5); err != nil {
		t.Fatalf("vote: %v", err)
	}

	if err := svc.Delete(ctx, game.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if games := svc.List(ctx, nil); len(games) != 0 {
		t.Fatalf("game still listed after delete: %v", games)
	}

	if _, err := shareSvc.Resolve(ctx, created.Share.Code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resolve after cascade: err = %v, want ErrNotFound", err)
	}

	// 评分聚合级联删除
	agg := ratingSvc.GetAggregate(ctx, subjectID(game.ID), "")
	if agg.Total != 0 {
		t.Fatalf("aggregate survived delete: %+v", agg)
	}
}

func TestCatalogListFilters(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	specs := []struct {
		name     string
		platform string
		genre    string
	}{
		{"Dragon Quest", model.PlatformPSP, "RPG"},
		{"Doom Mod", model.PlatformPC, "Action"},
		{"Drag Racer", model.PlatformPC, "Racing"},
	}

	for _, sp := range specs {
		req := validGameRequest(sp.name)
		req.Platform = sp.platform
		req.Genre = sp.genre

		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", sp.name, err)
		}
	}

	t.Run("platform filter keeps insertion order", func(t *testing.T) {
		got := svc.List(ctx, &types.GameFilter{Platform: model.PlatformPC})
		if len(got) != 2 || got[0].Name != "Doom Mod" || got[1].Name != "Drag Racer" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("case-insensitive substring search", func(t *testing.T) {
		got := svc.List(ctx, &types.GameFilter{Search: "drag"})
		if len(got) != 2 || got[0].Name != "Dragon Quest" || got[1].Name != "Drag Racer" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("genre filter", func(t *testing.T) {
		got := svc.List(ctx, &types.GameFilter{Genre: "Racing"})
		if len(got) != 1 || got[0].Name != "Drag Racer" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		got := svc.List(ctx, &types.GameFilter{Newest: true})
		if len(got) != 3 || got[0].Name != "Drag Racer" {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestRecordDownloadPlatformDimension(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewCatalogService(ctx)

	req := validGameRequest("PSP Game")
	req.Platform = model.PlatformPSP

	game, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 按链接标签统计，而不是游戏自身平台
	if _, err := svc.RecordDownload(ctx, game.ID, "MediaFire"); err != nil {
		t.Fatalf("record download: %v", err)
	}

	// 标签留空回退到游戏平台
	if _, err := svc.RecordDownload(ctx, game.ID, ""); err != nil {
		t.Fatalf("record download: %v", err)
	}

	counters := svc.Store().LoadPlatformDownloads(ctx)
	if counters["MediaFire"] != 1 || counters[model.PlatformPSP] != 1 {
		t.Fatalf("counters = %v", counters)
	}

	got, err := svc.Get(ctx, game.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Downloads != 2 {
		t.Fatalf("downloads = %d, want 2", got.Downloads)
	}
}
