package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Agora/config"
	"Agora/models"
	"Agora/pkg/jwt"
	"Agora/service"

	"github.com/gin-gonic/gin"
)

type stubModerationService struct {
	service.IModerationService
	unbanCommunity uint64
	unbanActor     uint64
	unbanUser      uint64
	unbanCalls     int
}

func (s *stubModerationService) UnbanUser(ctx context.Context, communityID, actorID, userID uint64) error {
	s.unbanCommunity, s.unbanActor, s.unbanUser = communityID, actorID, userID
	s.unbanCalls++
	return nil
}

type stubCommunityService struct {
	service.ICommunityService
}

func (s *stubCommunityService) ResolveSlug(ctx context.Context, slug string) (*models.Community, error) {
	return &models.Community{ID: 7, Slug: slug}, nil
}

func newModerationRouter(mod *stubModerationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &ModerationHandler{
		Config:            &config.Config{Jwt: &config.Jwt{Secret: "test-secret"}},
		ModerationService: mod,
		CommunityService:  &stubCommunityService{},
	}
	h.RegisterRouter(r)
	return r
}

func bearerToken(t *testing.T, userID uint64) string {
	t.Helper()
	token, err := jwt.GenerateToken([]byte("test-secret"), userID, "access", time.Hour)
	if err != nil {
		t.Fatalf("签发 token 失败: %v", err)
	}
	return "Bearer " + token
}

func TestUnbanUserDeleteRoute(t *testing.T) {
	mod := &stubModerationService{}
	r := newModerationRouter(mod)

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"user_id": 99}`)
	req := httptest.NewRequest(http.MethodDelete, "/v1/communities/golang/bans", body)
	req.Header.Set("Authorization", bearerToken(t, 5))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if mod.unbanCalls != 1 {
		t.Fatalf("UnbanUser 调用 %d 次, want 1", mod.unbanCalls)
	}
	if mod.unbanCommunity != 7 || mod.unbanActor != 5 || mod.unbanUser != 99 {
		t.Errorf("收到 (community=%d, actor=%d, user=%d), want (7, 5, 99)",
			mod.unbanCommunity, mod.unbanActor, mod.unbanUser)
	}
}

// DELETE 空请求体时走 user_id 查询参数
func TestUnbanUserDeleteQueryParam(t *testing.T) {
	mod := &stubModerationService{}
	r := newModerationRouter(mod)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/communities/golang/bans?user_id=42", nil)
	req.Header.Set("Authorization", bearerToken(t, 5))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if mod.unbanUser != 42 {
		t.Errorf("user = %d, want 42", mod.unbanUser)
	}
}

// 旧的 POST /unban 路由继续可用
func TestUnbanUserLegacyPostRoute(t *testing.T) {
	mod := &stubModerationService{}
	r := newModerationRouter(mod)

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"user_id": 11}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/communities/golang/unban", body)
	req.Header.Set("Authorization", bearerToken(t, 5))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if mod.unbanUser != 11 {
		t.Errorf("user = %d, want 11", mod.unbanUser)
	}
}

func TestUnbanUserRequiresAuth(t *testing.T) {
	mod := &stubModerationService{}
	r := newModerationRouter(mod)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/communities/golang/bans?user_id=1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if mod.unbanCalls != 0 {
		t.Errorf("未登录不应触达 service, 调用了 %d 次", mod.unbanCalls)
	}
}
