package types

import "time"

// LoginRequest 管理员登录请求体.
type LoginRequest struct {
	// Username 管理员用户名
	Username string `form:"username" json:"username" rule:"required"`
	// Password 管理员密码
	Password string `form:"password" json:"password" rule:"required"`
}

// LoginResponse 登录成功响应体.
type LoginResponse struct {
	// Token 会话令牌，后续请求经 Authorization 头携带
	Token string `json:"token"`
	// Username 登录的管理员用户名
	Username string `json:"username"`
	// ExpiresAt 会话过期时间
	ExpiresAt time.Time `json:"expires_at"`
}

// ThemeRequest 主题设置请求体.
type ThemeRequest struct {
	// Theme 主题取值 light/dark
	Theme string `form:"theme" json:"theme" rule:"required,oneof=light dark"`
}

// ThemeResponse 主题响应体.
type ThemeResponse struct {
	// Theme 当前主题
	Theme string `json:"theme"`
}
