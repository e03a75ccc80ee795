package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, defaultAppFactory)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "draftpicks: %v\n", err)
		os.Exit(1)
	}
}
