package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/darklord813/gamevault/pkg/configs"
	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/store"
	"github.com/darklord813/gamevault/pkg/internal/types"
	nlog "github.com/darklord813/gamevault/pkg/log"
)

// SessionService 负责管理员登录与会话校验.
type SessionService struct {
	st  *store.Store
	now func() time.Time
}

// NewSessionService 创建并返回一个新的 SessionService 实例.
func NewSessionService(c context.Context) *SessionService {
	kvc := ctxPkg.GetKVClient(c)
	if kvc == nil {
		nlog.Logger().Warn().Msg("KV client not initialized, SessionService features limited")
	}

	return &SessionService{
		st:  store.New(kvc),
		now: time.Now,
	}
}

// Login 校验固定凭证对，成功则签发会话令牌.
// 凭证比较使用恒定时间算法，避免时序侧信道.
func (s *SessionService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, NewValidationError("", "username and password are required")
	}

	cfg := configs.GetConfig().Auth

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.Password)) == 1

	if !userOK || !passOK {
		nlog.Logger().Warn().Str("username", req.Username).Msg("admin login rejected")

		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	now := s.now().UTC()
	sess := model.AdminSession{
		Token:     uuid.NewString(),
		Username:  cfg.Username,
		LoggedIn:  now,
		ExpiresAt: now.Add(cfg.SessionTTL()),
	}

	if err := s.st.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("username", sess.Username).Time("expires_at", sess.ExpiresAt).Msg("admin logged in")

	return &types.LoginResponse{
		Token:     sess.Token,
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// Authenticated 校验令牌是否对应有效会话.
func (s *SessionService) Authenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	sess := s.st.LoadSession(ctx)
	if !sess.Valid(s.now().UTC()) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(sess.Token)) == 1
}

// Logout 删除当前会话.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.st.DeleteSession(ctx)
}
