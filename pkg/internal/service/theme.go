package service

import (
	"context"

	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/store"
	"github.com/darklord813/gamevault/pkg/internal/types"
)

// ThemeService 负责站点主题偏好.
type ThemeService struct {
	st *store.Store
}

// NewThemeService 创建并返回一个新的 ThemeService 实例.
func NewThemeService(c context.Context) *ThemeService {
	return &ThemeService{st: store.New(ctxPkg.GetKVClient(c))}
}

// Get 读取当前主题，未设置时为亮色.
func (s *ThemeService) Get(ctx context.Context) *types.ThemeResponse {
	pref := s.st.LoadTheme(ctx)
	return &types.ThemeResponse{Theme: pref.Theme}
}

// Set 设置主题偏好.
func (s *ThemeService) Set(ctx context.Context, theme string) (*types.ThemeResponse, error) {
	if !model.ValidTheme(theme) {
		return nil, NewValidationError("theme", "must be light or dark")
	}

	if err := s.st.SaveTheme(ctx, model.ThemePreference{Theme: theme}); err != nil {
		return nil, err
	}

	return &types.ThemeResponse{Theme: theme}, nil
}
