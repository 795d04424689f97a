package service

import (
	"errors"
	"testing"
)

func TestVoteLifecycle(t *testing.T) {
	ctx := newTestContext(t)
	catalog := NewCatalogService(ctx)
	svc := NewRatingService(ctx)

	game, err := catalog.Create(ctx, validGameRequest("Rated Game"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	subject := subjectID(game.ID)

	t.Run("first vote", func(t *testing.T) {
		resp, err := svc.Vote(ctx, subject, "user-a", 4)
		if err != nil {
			t.Fatalf("vote: %v", err)
		}

		if resp.Total != 1 || resp.Average != 4.0 {
			t.Fatalf("resp = %+v", resp)
		}

		if resp.UserRating != 4 {
			t.Fatalf("user rating = %d, want 4", resp.UserRating)
		}
	})

	t.Run("revote adjusts in place", func(t *testing.T) {
		resp, err := svc.Vote(ctx, subject, "user-a", 2)
		if err != nil {
			t.Fatalf("revote: %v", err)
		}

		if resp.Total != 1 {
			t.Fatalf("total = %d, want 1 after revote", resp.Total)
		}

		if resp.Average != 2.0 {
			t.Fatalf("average = %v, want 2.0", resp.Average)
		}

		want := [5]int{0, 0, 0, 1, 0}
		if resp.Distribution != want {
			t.Fatalf("distribution = %v, want %v", resp.Distribution, want)
		}
	})

	t.Run("derived fields propagate to catalog", func(t *testing.T) {
		got, err := catalog.Get(ctx, game.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}

		if got.Rating != 2.0 || got.Votes != 1 {
			t.Fatalf("game derived fields = rating %v votes %d, want 2.0, 1", got.Rating, got.Votes)
		}
	})
}

func TestVoteValidation(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewRatingService(ctx)

	if _, err := svc.Vote(ctx, SubjectFeatured, "user-a", 0); !IsValidation(err) {
		t.Fatalf("rating 0: err = %v, want ValidationError", err)
	}

	if _, err := svc.Vote(ctx, SubjectFeatured, "user-a", 6); !IsValidation(err) {
		t.Fatalf("rating 6: err = %v, want ValidationError", err)
	}

	if _, err := svc.Vote(ctx, "not-a-subject", "user-a", 3); !IsValidation(err) {
		t.Fatalf("bad subject: err = %v, want ValidationError", err)
	}
}

func TestVoteMissingGame(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewRatingService(ctx)

	if _, err := svc.Vote(ctx, "123456", "user-a", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestVoteFeaturedSentinel(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewRatingService(ctx)

	// 哨兵主题无需游戏存在
	resp, err := svc.Vote(ctx, SubjectFeatured, "user-a", 5)
	if err != nil {
		t.Fatalf("vote featured: %v", err)
	}

	if resp.Total != 1 || resp.Average != 5.0 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestVoteGeneratesUserID(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewRatingService(ctx)

	resp, err := svc.Vote(ctx, SubjectFeatured, "", 3)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}

	if resp.UserID == "" {
		t.Fatal("server must mint a user id when absent")
	}

	// 用返回的标识重复投票必须命中同一条记录
	again, err := svc.Vote(ctx, SubjectFeatured, resp.UserID, 5)
	if err != nil {
		t.Fatalf("revote: %v", err)
	}

	if again.Total != 1 {
		t.Fatalf("total = %d, want 1", again.Total)
	}
}

func TestGetAggregateZeroDefault(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewRatingService(ctx)

	resp := svc.GetAggregate(ctx, "999", "user-x")
	if resp.Total != 0 || resp.Average != 0 {
		t.Fatalf("resp = %+v, want zero aggregate", resp)
	}

	if resp.Stars.Empty != 5 {
		t.Fatalf("stars = %+v, want all empty", resp.Stars)
	}
}

func TestRecomputeGameRatingBackfill(t *testing.T) {
	ctx := newTestContext(t)
	catalog := NewCatalogService(ctx)
	svc := NewRatingService(ctx)

	game, err := catalog.Create(ctx, validGameRequest("Backfill"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Vote(ctx, subjectID(game.ID), "a", 5); err != nil {
		t.Fatalf("vote: %v", err)
	}

	if _, err := svc.Vote(ctx, subjectID(game.ID), "b", 2); err != nil {
		t.Fatalf("vote: %v", err)
	}

	// 人为清掉派生字段后独立调用回写修复
	games := catalog.Store().LoadGames(ctx)
	games[0].Rating = 0
	games[0].Votes = 0

	if err := catalog.Store().SaveGames(ctx, games); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.RecomputeGameRating(ctx, game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	got, err := catalog.Get(ctx, game.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Rating != 3.5 || got.Votes != 2 {
		t.Fatalf("rating %v votes %d, want 3.5, 2", got.Rating, got.Votes)
	}
}
