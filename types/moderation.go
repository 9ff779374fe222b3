package types

type BanUserRequest struct {
	UserID       uint64 `json:"user_id" binding:"required"`
	Reason       string `json:"reason" binding:"omitempty,max=500"`
	ExpiresHours int    `json:"expires_hours"` // 0 表示永久
}

type UnbanUserRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

type CreateReportRequest struct {
	PostID    uint64 `json:"post_id"`
	CommentID uint64 `json:"comment_id"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

type ResolveReportRequest struct {
	ReportID uint64 `json:"report_id" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=RESOLVED DISMISSED"`
}
