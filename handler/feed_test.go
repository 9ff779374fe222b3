package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Agora/config"
	"Agora/types"

	"github.com/gin-gonic/gin"
)

// stubFeedService 记录收到的参数
type stubFeedService struct {
	slug   string
	mode   string
	sort   string
	cursor string
	limit  int
}

func (s *stubFeedService) ListCommunityPosts(ctx context.Context, slug, sort, cursorStr string, limit int, currentUserID uint64) (*types.FeedResponse, error) {
	s.slug, s.sort, s.cursor, s.limit = slug, sort, cursorStr, limit
	return &types.FeedResponse{Posts: make([]*types.PostResponse, 0)}, nil
}

func (s *stubFeedService) ListFeed(ctx context.Context, mode, sort, cursorStr string, limit int, currentUserID uint64) (*types.FeedResponse, error) {
	s.mode, s.sort, s.cursor, s.limit = mode, sort, cursorStr, limit
	return &types.FeedResponse{Posts: make([]*types.PostResponse, 0)}, nil
}

func newFeedRouter(svc *stubFeedService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &FeedHandler{
		Config:      &config.Config{Jwt: &config.Jwt{Secret: "test-secret"}},
		FeedService: svc,
	}
	h.RegisterRouter(r)
	return r
}

func TestListFeedQueryParams(t *testing.T) {
	svc := &stubFeedService{}
	r := newFeedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/feed?mode=home&sort=new&limit=5", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.mode != types.FeedHome {
		t.Errorf("mode = %q, want %q", svc.mode, types.FeedHome)
	}
	if svc.sort != types.SortNew {
		t.Errorf("sort = %q, want %q", svc.sort, types.SortNew)
	}
	if svc.limit != 5 {
		t.Errorf("limit = %d, want 5", svc.limit)
	}
}

// 旧别名 scope/page_size 继续可用
func TestListFeedLegacyParamAliases(t *testing.T) {
	svc := &stubFeedService{}
	r := newFeedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/feed?scope=all&page_size=7", nil)
	r.ServeHTTP(w, req)

	if svc.mode != types.FeedAll {
		t.Errorf("mode = %q, want %q", svc.mode, types.FeedAll)
	}
	if svc.limit != 7 {
		t.Errorf("limit = %d, want 7", svc.limit)
	}
}

func TestListFeedDefaults(t *testing.T) {
	svc := &stubFeedService{}
	r := newFeedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	r.ServeHTTP(w, req)

	if svc.mode != types.FeedPopular {
		t.Errorf("默认 mode = %q, want %q", svc.mode, types.FeedPopular)
	}
	if svc.sort != types.SortHot {
		t.Errorf("默认 sort = %q, want %q", svc.sort, types.SortHot)
	}
	if svc.limit != 0 {
		t.Errorf("未传 limit 应为 0 交由 service 取默认值, got %d", svc.limit)
	}
}

func TestListCommunityPostsQueryParams(t *testing.T) {
	svc := &stubFeedService{}
	r := newFeedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/communities/golang/posts?sort=top&limit=3&cursor=abc", nil)
	r.ServeHTTP(w, req)

	if svc.slug != "golang" {
		t.Errorf("slug = %q, want golang", svc.slug)
	}
	if svc.sort != types.SortTop {
		t.Errorf("sort = %q, want %q", svc.sort, types.SortTop)
	}
	if svc.limit != 3 {
		t.Errorf("limit = %d, want 3", svc.limit)
	}
	if svc.cursor != "abc" {
		t.Errorf("cursor = %q, want abc", svc.cursor)
	}
}
