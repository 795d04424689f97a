package model

// ViewCounters 按游戏 ID 的浏览计数，与游戏记录上的 Views 字段并行维护.
type ViewCounters map[int64]int64

// ShareAccess 按分享码的访问计数，与链接上的 Views 字段并行维护.
type ShareAccess map[string]int64

// PlatformDownloads 按下载链接平台标签的下载计数.
// 维度是链接的标签而非游戏自身平台，两者可能不同（如网盘链接）.
type PlatformDownloads map[string]int64

// 主题枚举.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemePreference 站点主题偏好.
type ThemePreference struct {
	Theme string `json:"theme"`
}

// ValidTheme 检查主题取值.
func ValidTheme(t string) bool {
	return t == ThemeLight || t == ThemeDark
}
