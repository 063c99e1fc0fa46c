package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := loadFlags()

	if err := setupLogging(flags); err != nil {
		fmt.Fprintf(os.Stderr, "galleria: %v\n", err)
		return 1
	}
	defer klog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	klog.Infof("galleria starting")
	if err := app.Run(ctx, app.Options{ConfigPath: flags.ConfigPath}); err != nil {
		klog.Errorf("galleria: %v", err)
		fmt.Fprintf(os.Stderr, "galleria: %v\n", err)
		return 1
	}
	klog.Infof("galleria exiting")
	return 0
}
