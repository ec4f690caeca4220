// Command function serves the notifyNewLesson Cloud Function locally.
package main

import (
	"log/slog"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	_ "github.com/Roma7-7-7/lesson-notifier"
)

func main() {
	port := "8080"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	slog.Info("starting function framework", "port", port) //nolint:sloglint // function logger lives in the registered package
	if err := funcframework.Start(port); err != nil {
		slog.Error("function framework stopped", "error", err) //nolint:sloglint // see above
		os.Exit(1)
	}
}
