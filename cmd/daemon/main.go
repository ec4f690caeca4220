package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"

	"github.com/Roma7-7-7/lesson-notifier/internal"
	"github.com/Roma7-7-7/lesson-notifier/internal/trigger"
)

var (
	Version   = "dev"     //nolint:gochecknoglobals // version is a global variable
	BuildTime = "unknown" //nolint:gochecknoglobals // build time is a global variable
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context) int {
	conf, err := internal.GetConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // logger is not yet initialized
		return 1
	}

	log := internal.NewLogger(conf.Dev)
	log.InfoContext(ctx, "lesson-notifier daemon starting", "version", Version, "build_time", BuildTime)

	notifier, err := internal.NewNotifier(ctx, conf, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to create notifier", "error", err)
		return 1
	}

	projectID := conf.FirebaseProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, conf.Firebase().ClientOptions()...)
	if err != nil {
		log.ErrorContext(ctx, "failed to create firestore client", "error", err)
		return 1
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close firestore client", "error", err)
		}
	}()

	listener := trigger.NewListener(client, notifier, conf.Collection, conf.Concurrency, log)
	if err := listener.Run(ctx); err != nil {
		log.ErrorContext(ctx, "listener failed", "error", err)
		return 1
	}

	log.InfoContext(ctx, "daemon stopped")
	return 0
}
