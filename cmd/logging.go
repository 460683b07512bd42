package cmd

import (
	"github.com/cubebake/cubebake/config"
	"github.com/cubebake/cubebake/log"
	"github.com/urfave/cli"
)

var logger = log.New("cubebake")

func setupLogging(ctx *cli.Context, cfg *config.Config) {
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
