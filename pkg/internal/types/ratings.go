package types

import (
	"github.com/darklord813/gamevault/pkg/internal/model"
)

// VoteRequest 投票请求体.
type VoteRequest struct {
	// Rating 星级 1-5
	Rating int `form:"rating" json:"rating" rule:"required,min=1,max=5"`
	// UserID 匿名用户标识，留空时由服务端生成并随响应返回
	UserID string `form:"user_id" json:"user_id"`
}

// AggregateResponse 评分聚合响应体.
type AggregateResponse struct {
	// SubjectID 主题标识（游戏 ID 的十进制串）
	SubjectID string `json:"subject_id"`
	// Total 投票总数
	Total int `json:"total"`
	// Average 算术平均分，无投票为 0
	Average float64 `json:"average"`
	// Distribution 按星级降序的 5 桶分布
	Distribution [5]int `json:"distribution"`
	// Stars 平均分的星级展示拆分
	Stars model.StarRender `json:"stars"`
	// UserID 本次请求关联的匿名用户标识
	UserID string `json:"user_id,omitempty"`
	// UserRating 该用户当前的评分，未投过为 0
	UserRating int `json:"user_rating,omitempty"`
}
