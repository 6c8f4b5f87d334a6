package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ericfisherdev/passop/internal/cli"
)

var (
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, cli.DefaultApp(), os.Args[1:], version, os.Exit)
	stop()
	os.Exit(code)
}
