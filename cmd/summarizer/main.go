package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"email-analysis/internal/config"
	"email-analysis/internal/logging"
	"email-analysis/internal/pubsub"
	"email-analysis/internal/store"
	"email-analysis/internal/summarize"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/robfig/cron/v3"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run the summarization once and exit")
	dateOverride := flag.String("date", "", "summarize this day (YYYY-MM-DD) instead of yesterday; implies -once")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Log.Fatalf("Failed to load config: %v", err)
	}

	location, err := config.Location(cfg)
	if err != nil {
		logging.Log.Fatalf("Failed to load timezone: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		logging.Log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	objects := store.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket)
	recordStore := store.NewRecordStore(objects, cfg.Storage.JSONPrefix)
	client := summarize.NewAnthropicClient(cfg.Summarizer.APIKey, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
	summarizer := summarize.NewSummarizer(client)
	publisher := pubsub.NewSNSPublisher(sns.NewFromConfig(awsCfg), cfg.Summarizer.TopicARN)

	job := func(ctx context.Context, day time.Time) error {
		return runDay(ctx, recordStore, summarizer, publisher, day)
	}

	if *dateOverride != "" {
		day, err := time.ParseInLocation("2006-01-02", *dateOverride, location)
		if err != nil {
			logging.Log.Fatalf("Invalid -date value %q: %v", *dateOverride, err)
		}
		if err := job(ctx, day); err != nil {
			logging.Log.Fatalf("Summarization failed: %v", err)
		}
		return
	}

	if *once {
		if err := job(ctx, yesterday(location)); err != nil {
			logging.Log.Fatalf("Summarization failed: %v", err)
		}
		return
	}

	c := cron.New(cron.WithLocation(location))
	_, err = c.AddFunc(cfg.Summarizer.Schedule, func() {
		logging.Log.Info("Cron triggered, summarizing yesterday's emails...")
		if err := job(ctx, yesterday(location)); err != nil {
			logging.Log.Errorf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		logging.Log.Fatalf("Failed to set up cron schedule %q: %v", cfg.Summarizer.Schedule, err)
	}
	c.Start()
	logging.Log.Infof("Scheduled summarization with cron expression: %s", cfg.Summarizer.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logging.Log.Infof("Received signal %v, shutting down...", sig)

	cancel()
	c.Stop()
}

func yesterday(location *time.Location) time.Time {
	return time.Now().In(location).AddDate(0, 0, -1)
}

// runDay summarizes one day's partition and publishes the outcome. An empty
// partition, or a successful outcome with nothing worth reporting, publishes
// nothing.
func runDay(ctx context.Context, records *store.RecordStore, summarizer *summarize.Summarizer, publisher pubsub.Publisher, day time.Time) error {
	emails, err := records.ListDay(ctx, day)
	if err != nil {
		if errors.Is(err, store.ErrPartitionNotFound) {
			logging.Log.Infof("No emails for %s, nothing to do", day.Format("2006-01-02"))
			return nil
		}
		return fmt.Errorf("list day: %w", err)
	}

	logging.Log.Infof("Found %d emails for %s", len(emails), day.Format("2006-01-02"))

	outcome, err := summarizer.Summarize(ctx, emails)
	if err != nil {
		return err
	}

	if outcome.Success() && len(outcome.Emails()) == 0 {
		logging.Log.Info("Nothing worth reporting, skipping notification")
		return nil
	}

	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	if err := publisher.Publish(ctx, payload); err != nil {
		return err
	}

	if outcome.Success() {
		logging.Log.Infof("Published outcome with %d summaries", len(outcome.Emails()))
	} else {
		logging.Log.Warnf("Published failure outcome: %s", outcome.Reason())
	}
	return nil
}
