package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/etimsclient/internal/buildinfo"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
	"github.com/dmitrijs2005/etimsclient/internal/proxy"
	"github.com/dmitrijs2005/etimsclient/internal/proxy/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := proxy.NewApp(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
