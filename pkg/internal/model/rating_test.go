package model_test

import (
	"testing"
	"time"

	"github.com/darklord813/gamevault/pkg/internal/model"
)

func TestAggregateApply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first vote", func(t *testing.T) {
		agg := model.NewAggregate()
		agg.Apply("user-a", 4, now)

		if agg.Total != 1 || agg.Sum != 4 {
			t.Fatalf("total=%d sum=%d, want 1, 4", agg.Total, agg.Sum)
		}

		if agg.Distribution[1] != 1 { // 5-4=1
			t.Fatalf("distribution = %v, want bucket 1 == 1", agg.Distribution)
		}
	})

	t.Run("revote adjusts in place", func(t *testing.T) {
		agg := model.NewAggregate()
		agg.Apply("user-a", 4, now)
		agg.Apply("user-a", 2, now.Add(time.Minute))

		if agg.Total != 1 {
			t.Fatalf("total = %d, want 1 (revote must not append)", agg.Total)
		}

		if agg.Sum != 2 {
			t.Fatalf("sum = %d, want 2", agg.Sum)
		}

		want := [5]int{0, 0, 0, 1, 0} // bucket 5-2=3
		if agg.Distribution != want {
			t.Fatalf("distribution = %v, want %v", agg.Distribution, want)
		}

		if len(agg.Votes) != 1 || agg.Votes[0].Rating != 2 {
			t.Fatalf("votes = %+v, want single vote with rating 2", agg.Votes)
		}
	})

	t.Run("invariants hold over vote sequences", func(t *testing.T) {
		agg := model.NewAggregate()
		seq := []struct {
			user   string
			rating int
		}{
			{"a", 5}, {"b", 3}, {"c", 4}, {"a", 2}, {"b", 3}, {"d", 1},
		}

		for i, s := range seq {
			agg.Apply(s.user, s.rating, now.Add(time.Duration(i)*time.Second))
		}

		sum := 0
		for _, v := range agg.Votes {
			sum += v.Rating
		}

		if agg.Sum != sum {
			t.Fatalf("sum = %d, want Σ votes = %d", agg.Sum, sum)
		}

		if agg.Total != len(agg.Votes) {
			t.Fatalf("total = %d, want len(votes) = %d", agg.Total, len(agg.Votes))
		}

		distSum := 0
		for _, c := range agg.Distribution {
			distSum += c
		}

		if distSum != agg.Total {
			t.Fatalf("Σ distribution = %d, want total = %d", distSum, agg.Total)
		}
	})
}

func TestAggregateAverage(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		ratings map[string]int
		want    float64
	}{
		{"no votes", nil, 0},
		{"5,3,4", map[string]int{"a": 5, "b": 3, "c": 4}, 4.0},
		{"5,2", map[string]int{"a": 5, "b": 2}, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := model.NewAggregate()
			for user, r := range tt.ratings {
				agg.Apply(user, r, now)
			}

			if got := agg.Average(); got != tt.want {
				t.Fatalf("average = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderStars(t *testing.T) {
	tests := []struct {
		name    string
		average float64
		want    model.StarRender
	}{
		{"zero", 0, model.StarRender{Full: 0, Half: 0, Empty: 5}},
		{"exact integer", 4.0, model.StarRender{Full: 4, Half: 0, Empty: 1}},
		{"half at 3.5", 3.5, model.StarRender{Full: 3, Half: 1, Empty: 1}},
		{"fraction below threshold", 4.2, model.StarRender{Full: 4, Half: 0, Empty: 1}},
		{"fraction at threshold", 4.25, model.StarRender{Full: 4, Half: 1, Empty: 0}},
		{"full five", 5.0, model.StarRender{Full: 5, Half: 0, Empty: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.RenderStars(tt.average); got != tt.want {
				t.Fatalf("RenderStars(%v) = %+v, want %+v", tt.average, got, tt.want)
			}
		})
	}
}

func TestGameNormalize(t *testing.T) {
	g := model.Game{Name: "Test Game"}
	g.Normalize()

	if g.Version != model.DefaultVersion {
		t.Fatalf("version = %q, want %q", g.Version, model.DefaultVersion)
	}

	if g.Platform != model.PlatformAndroid {
		t.Fatalf("platform = %q, want %q", g.Platform, model.PlatformAndroid)
	}

	if g.DownloadLinks == nil {
		t.Fatal("download links must be normalized to empty slice")
	}
}
