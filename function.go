// Package lessonnotifier registers the notifyNewLesson Cloud Function, which
// announces newly created Sunday lessons to the all_users topic.
//
// Deploy as a Firestore-triggered gen2 function in us-central1:
//
//	gcloud functions deploy notifyNewLesson --gen2 --runtime=go126 --region=us-central1 \
//	  --trigger-event-filters=type=google.cloud.firestore.document.v1.created \
//	  --trigger-event-filters=database='(default)' \
//	  --trigger-event-filters-path-pattern=document='lessons/{lessonId}'
package lessonnotifier

import (
	"context"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/Roma7-7-7/lesson-notifier/internal"
	"github.com/Roma7-7-7/lesson-notifier/internal/trigger"
)

const FunctionName = "notifyNewLesson"

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

	handler := trigger.NewCloudEventHandler(notifier, conf.Collection, log)
	functions.CloudEvent(FunctionName, handler.HandleCloudEvent)

	log.InfoContext(ctx, "function registered", "function", FunctionName, "region", conf.Region, "sink", conf.Sink)
}
