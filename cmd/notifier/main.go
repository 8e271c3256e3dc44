package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"email-analysis/internal/config"
	"email-analysis/internal/logging"
	"email-analysis/internal/models"
	"email-analysis/internal/notify"
	"email-analysis/internal/pubsub"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		logging.Log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	consumer := pubsub.NewSQSConsumer(sqs.NewFromConfig(awsCfg), cfg.Notifier.QueueURL)
	sender := notify.NewWebhookSender(cfg.Notifier.WebhookURL)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Log.Infof("Received signal %v, shutting down...", sig)
		cancel()
	}()

	handler := func(ctx context.Context, payload []byte) error {
		var outcome models.SummaryOutcome
		if err := json.Unmarshal(payload, &outcome); err != nil {
			// A payload that cannot be decoded will not improve with
			// redelivery; log it and drop the message.
			logging.Log.Errorf("Dropping undecodable outcome payload: %v", err)
			return nil
		}

		msg := notify.Render(outcome)
		if err := sender.Send(ctx, msg); err != nil {
			return err
		}

		if outcome.Success() {
			logging.Log.Infof("Delivered notification with %d summaries", len(outcome.Emails()))
		} else {
			logging.Log.Infof("Delivered failure alert")
		}
		return nil
	}

	if err := consumer.Run(ctx, handler); err != nil && ctx.Err() == nil {
		logging.Log.Fatalf("Consumer stopped: %v", err)
	}
	logging.Log.Info("Shutdown complete")
}
