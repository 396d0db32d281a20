package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/urfave/cli/v2"
)

func main() {
	var confPath string
	app := &cli.App{
		Name:  "usertool",
		Usage: "Operator commands for user accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "conf",
				Aliases:     []string{"c"},
				Usage:       "Path of the yaml config file",
				Value:       "conf/deploy.yml",
				Destination: &confPath,
			},
		},
		Commands: []*cli.Command{
			createCmd(&confPath),
			setPasswordCmd(&confPath),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		hlog.Errorf("usertool failed: %v", err)
		os.Exit(1)
	}
}
