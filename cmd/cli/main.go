// Command cli is an interactive client for the contacts directory API.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophcontacts/internal/buildinfo"
	"github.com/dmitrijs2005/gophcontacts/internal/client/cli"
	"github.com/dmitrijs2005/gophcontacts/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("cannot start: %v", err)
	}

	app.Run(ctx)
}
