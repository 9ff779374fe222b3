package main

import (
	"Agora/config"
	"Agora/pkg/log"
	"Agora/pkg/server"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	appProvider := InitServer(cfg)
	cliApp := &cli.App{
		Name: "api-server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "expire-bans",
				Usage: "mark due bans expired once and exit",
				Action: func(ctx *cli.Context) error {
					n, err := appProvider.Moderation.ExpireBans(ctx.Context)
					if err != nil {
						return err
					}
					log.L.Info("expire bans done", zap.Int64("count", n))
					return nil
				},
			},
			{
				Name:  "recompute-score",
				Usage: "rebuild a post or comment score from the vote ledger",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "type", Usage: "1=post 2=comment", Required: true},
					&cli.Uint64Flag{Name: "id", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					score, err := appProvider.Vote.RecomputeScore(ctx.Context, int8(ctx.Int("type")), ctx.Uint64("id"))
					if err != nil {
						return err
					}
					log.L.Info("recompute score done", zap.Int64("score", score))
					return nil
				},
			},
			{
				Name:  "recompute-comments",
				Usage: "rebuild a post comment counter from visible comments",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "post", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					count, err := appProvider.Comment.RecomputeCommentCount(ctx.Context, ctx.Uint64("post"))
					if err != nil {
						return err
					}
					log.L.Info("recompute comment count done", zap.Int64("count", count))
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
