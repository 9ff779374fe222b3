package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCommunityDAO,
	NewCommunityMemberDAO,
	NewPostDAO,
	NewCommentDAO,
	NewVoteDAO,
	NewBanDAO,
	NewReportDAO,
	NewModLogDAO,
	NewFlairDAO,
	NewRuleDAO,
	NewSavedPostDAO,
)
