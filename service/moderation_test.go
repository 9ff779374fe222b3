package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"Agora/models"
	"Agora/pkg/response"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     int8
		required int8
		want     bool
	}{
		{models.RoleOwner, models.RoleOwner, true},
		{models.RoleOwner, models.RoleModerator, true},
		{models.RoleOwner, models.RoleMember, true},
		{models.RoleModerator, models.RoleOwner, false},
		{models.RoleModerator, models.RoleModerator, true},
		{models.RoleModerator, models.RoleMember, true},
		{models.RoleMember, models.RoleModerator, false},
		{models.RoleMember, models.RoleMember, true},
		{0, models.RoleMember, false}, // 非成员
	}
	for _, tt := range tests {
		if got := models.RoleAtLeast(tt.role, tt.required); got != tt.want {
			t.Errorf("RoleAtLeast(%d, %d) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestBanBlocking(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		ban  models.CommunityBan
		want bool
	}{
		{"永久生效", models.CommunityBan{Status: models.BanActive}, true},
		{"未到期", models.CommunityBan{Status: models.BanActive, ExpiresAt: &future}, true},
		{"已到期但未标记", models.CommunityBan{Status: models.BanActive, ExpiresAt: &past}, false},
		{"恰好到期", models.CommunityBan{Status: models.BanActive, ExpiresAt: &now}, false},
		{"已解除", models.CommunityBan{Status: models.BanExpired, ExpiresAt: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ban.Blocking(now); got != tt.want {
				t.Errorf("Blocking = %v, want %v", got, tt.want)
			}
		})
	}
}

// 缺失的举报是 404, 已落终态的举报是 409
func TestReportOutcome(t *testing.T) {
	open := &models.CommunityReport{ID: 1, CommunityID: 10, Status: models.ReportOpen}
	resolved := &models.CommunityReport{ID: 2, CommunityID: 10, Status: models.ReportResolved}
	dismissed := &models.CommunityReport{ID: 3, CommunityID: 10, Status: models.ReportDismissed}

	tests := []struct {
		name       string
		report     *models.CommunityReport
		requested  string
		wantStatus int8
		wantAction string
		wantCode   int
	}{
		{"受理", open, "RESOLVED", models.ReportResolved, models.ModActionResolveReport, 0},
		{"驳回", open, "DISMISSED", models.ReportDismissed, models.ModActionDismissReport, 0},
		{"不存在", nil, "RESOLVED", 0, "", http.StatusNotFound},
		{"已受理再处理", resolved, "DISMISSED", 0, "", http.StatusConflict},
		{"已驳回再处理", dismissed, "RESOLVED", 0, "", http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, action, err := reportOutcome(tt.report, tt.requested)
			if tt.wantCode != 0 {
				var biz *response.BizError
				if !errors.As(err, &biz) {
					t.Fatalf("err = %v, want BizError", err)
				}
				if biz.Code != tt.wantCode {
					t.Errorf("Code = %d, want %d", biz.Code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if action != tt.wantAction {
				t.Errorf("action = %q, want %q", action, tt.wantAction)
			}
		})
	}
}
