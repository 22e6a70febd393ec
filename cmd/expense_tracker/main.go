package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"expense_tracker/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewApp().Run(ctx); err != nil {
		log.Fatalf("app stopped: %v", err)
	}
}
