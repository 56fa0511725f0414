package main

import (
	"context"
	"log"
	"os"

	"github.com/avdonin/taskhub/internal/buildinfo"
	"github.com/avdonin/taskhub/internal/client/cli"
	"github.com/avdonin/taskhub/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
