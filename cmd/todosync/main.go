package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	defer glog.Flush()

	if err := cli.Execute(ctx, version); err != nil {
		fmt.Fprintf(os.Stderr, "todosync: %v\n", err)
		return 1
	}
	return 0
}
