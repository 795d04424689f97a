package service

import (
	"errors"
	"testing"
	"time"

	"github.com/darklord813/gamevault/pkg/internal/types"
)

func TestLoginAndSession(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewSessionService(ctx)

	resp, err := svc.Login(ctx, &types.LoginRequest{Username: "pspgamers", Password: "admin2025"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("token must be issued")
	}

	if !svc.Authenticated(ctx, resp.Token) {
		t.Fatal("fresh session must authenticate")
	}

	if svc.Authenticated(ctx, "wrong-token") {
		t.Fatal("foreign token must not authenticate")
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if svc.Authenticated(ctx, resp.Token) {
		t.Fatal("session must be gone after logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewSessionService(ctx)

	tests := []struct {
		name string
		req  types.LoginRequest
	}{
		{"wrong password", types.LoginRequest{Username: "pspgamers", Password: "nope"}},
		{"wrong username", types.LoginRequest{Username: "admin", Password: "admin2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, &tt.req); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("err = %v, want ErrUnauthorized", err)
			}
		})
	}

	t.Run("blank credentials", func(t *testing.T) {
		if _, err := svc.Login(ctx, &types.LoginRequest{}); !IsValidation(err) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})
}

func TestSessionExpiresAfterHorizon(t *testing.T) {
	ctx := newTestContext(t)
	svc := NewSessionService(ctx)

	now, advance := fixedClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	svc.now = now

	resp, err := svc.Login(ctx, &types.LoginRequest{Username: "pspgamers", Password: "admin2025"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	advance(7 * time.Hour)

	if !svc.Authenticated(ctx, resp.Token) {
		t.Fatal("session must survive within the 8h horizon")
	}

	advance(2 * time.Hour)

	if svc.Authenticated(ctx, resp.Token) {
		t.Fatal("session must expire past the 8h horizon")
	}
}
