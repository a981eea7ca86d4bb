package main

import (
	"fmt"
	"os"

	"Foodgram/config"
	"Foodgram/pkg/log"
	"Foodgram/pkg/server"
	"Foodgram/pkg/validate"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "foodgram recipe backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				EnvVars: []string{"FOODGRAM_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					if err := validate.Register(); err != nil {
						return err
					}
					cfg := config.New(ctx.String("config"))
					appProvider, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx, appProvider)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
