package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"email-analysis/internal/config"
	"email-analysis/internal/imapclient"
	"email-analysis/internal/ingest"
	"email-analysis/internal/logging"
	"email-analysis/internal/store"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var imapFailureCount atomic.Int32

const failureSleepDuration = 30 * time.Minute

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Log.Fatalf("Error reading configuration file: %v", err)
	}

	location, err := config.Location(cfg)
	if err != nil {
		logging.Log.Fatalf("Error loading timezone: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		logging.Log.Fatalf("Error loading AWS configuration: %v", err)
	}

	objects := store.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket)
	rawStore := store.NewRawStore(objects, cfg.Storage.RawPrefix)
	recordStore := store.NewRecordStore(objects, cfg.Storage.JSONPrefix)
	processor := ingest.NewProcessor(rawStore, recordStore, location)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Log.Infof("Received signal %v, shutting down...", sig)
		cancel()
	}()

	logging.Log.Infof("Starting email ingestion, refresh every %s", cfg.Ingest.RefreshTime)

	for {
		receiver := ingest.NewReceiver(imapclient.NewStandardClient(), cfg.Ingest, rawStore, processor)
		if err := receiver.Poll(ctx); err != nil {
			handleIMAPFailure(err)
		} else {
			imapFailureCount.Store(0)
		}

		select {
		case <-ctx.Done():
			logging.Log.Info("Shutdown complete")
			return
		case <-time.After(cfg.Ingest.RefreshTime):
		}
	}
}

// handleIMAPFailure increments the failure count and implements an exponential backoff strategy
func handleIMAPFailure(err error) {
	failures := imapFailureCount.Add(1)
	logging.Log.Errorf("IMAP polling error: %v", err)

	if failures >= 5 {
		base := 5 * time.Minute
		maxSteps := int32(10)

		n := failures - 5
		if n > maxSteps {
			n = maxSteps
		}

		backoff := base * time.Duration(1<<n)
		if backoff > failureSleepDuration {
			backoff = failureSleepDuration
		}

		logging.Log.Warnf("IMAP failed %d times, waiting %s before next attempt", failures, backoff)
		time.Sleep(backoff)
	}
}
