package main

import (
	"context"
	"os/signal"
	"syscall"

	"service-shipping-go/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.NewContainerBuilder().Build(ctx)
	app.MustRun(container)
}
