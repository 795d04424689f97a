package model

import (
	"time"
)

// Vote 单个用户的评分记录.
type Vote struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Aggregate 单个主题（游戏）的评分聚合.
// 不变量：Sum == Σ Votes[].Rating；Total == len(Votes)；Σ Distribution == Total.
type Aggregate struct {
	Total        int    `json:"total"`
	Sum          int    `json:"sum"`
	Votes        []Vote `json:"votes"`
	Distribution [5]int `json:"distribution"` // 按星级降序：下标 5-rating
}

// NewAggregate 返回零值聚合（未评分状态）.
func NewAggregate() *Aggregate {
	return &Aggregate{Votes: []Vote{}}
}

// bucketIndex 星级到分布数组下标的映射.
func bucketIndex(rating int) int {
	return 5 - rating
}

// Apply 应用一次投票：同一用户重复投票按差值原地调整，不追加记录.
func (a *Aggregate) Apply(userID string, rating int, now time.Time) {
	for i := range a.Votes {
		if a.Votes[i].UserID != userID {
			continue
		}

		old := a.Votes[i].Rating
		a.Sum += rating - old
		a.Distribution[bucketIndex(old)]--
		a.Distribution[bucketIndex(rating)]++
		a.Votes[i].Rating = rating
		a.Votes[i].Timestamp = now

		return
	}

	a.Votes = append(a.Votes, Vote{UserID: userID, Rating: rating, Timestamp: now})
	a.Total++
	a.Sum += rating
	a.Distribution[bucketIndex(rating)]++
}

// Average 算术平均值，无投票时为 0.
func (a *Aggregate) Average() float64 {
	if a.Total == 0 {
		return 0
	}

	return float64(a.Sum) / float64(a.Total)
}

// UserRating 返回指定用户的评分，未投过返回 0.
func (a *Aggregate) UserRating(userID string) int {
	for i := range a.Votes {
		if a.Votes[i].UserID == userID {
			return a.Votes[i].Rating
		}
	}

	return 0
}

// StarRender 平均分的整星/半星展示拆分.
type StarRender struct {
	Full  int `json:"full"`
	Half  int `json:"half"` // 0 或 1
	Empty int `json:"empty"`
}

// halfStarThreshold 小数部分达到该值时渲染半星.
const halfStarThreshold = 0.25

// RenderStars 把连续平均分拆为整星、半星与空星.
// 这是展示规则，不影响存储的平均值.
func RenderStars(average float64) StarRender {
	full := int(average)
	half := 0

	if average-float64(full) >= halfStarThreshold {
		half = 1
	}

	return StarRender{Full: full, Half: half, Empty: 5 - full - half}
}
