package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Roma7-7-7/lesson-notifier/internal"
	"github.com/Roma7-7-7/lesson-notifier/internal/trigger"
)

var streamHandler *trigger.StreamHandler

func main() {
	lambda.Start(streamHandler.HandleStream)
}

func init() {
	ctx := context.Background()

	conf, err := internal.GetConfig(ctx)
	if err != nil {
		panic("get config: " + err.Error())
	}

	log := internal.NewLogger(conf.Dev)

	notifier, err := internal.NewNotifier(ctx, conf, log)
	if err != nil {
		panic("create notifier: " + err.Error())
	}

	streamHandler = trigger.NewStreamHandler(notifier, conf.KeyAttribute, log)
	log.InfoContext(ctx, "lambda initialized", "sink", conf.Sink, "key_attribute", conf.KeyAttribute)
}
