//go:build wireinject
// +build wireinject

package main

import (
	"Agora/config"
	"Agora/dao"
	"Agora/handler"
	"Agora/pkg/client"
	"Agora/pkg/database"
	"Agora/pkg/server"
	"Agora/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		server.NewGinEngine,

		wire.Struct(new(handler.CommunityHandler), "*"),
		wire.Struct(new(handler.PostHandler), "*"),
		wire.Struct(new(handler.CommentHandler), "*"),
		wire.Struct(new(handler.VoteHandler), "*"),
		wire.Struct(new(handler.FeedHandler), "*"),
		wire.Struct(new(handler.ModerationHandler), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil
}
