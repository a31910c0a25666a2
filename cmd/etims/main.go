package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/etimsclient/internal/buildinfo"
	"github.com/dmitrijs2005/etimsclient/internal/client/cli"
	"github.com/dmitrijs2005/etimsclient/internal/client/config"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Root(ctx)

}
