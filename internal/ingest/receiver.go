package ingest

import (
	"context"
	"errors"
	"time"

	"email-analysis/internal/extract"
	"email-analysis/internal/imapclient"
	"email-analysis/internal/logging"
	"email-analysis/internal/models"
	"email-analysis/internal/store"

	"github.com/google/uuid"
)

// ReceiveWindow bounds how far back the unseen-message search looks. Wider
// than the poll interval so a slow cycle cannot skip messages.
const ReceiveWindow = 24 * time.Hour

// Receiver pulls unseen messages from the inbound mailbox, archives the raw
// bytes under a fresh transport-assigned id, and hands each id to the
// processor. A message is marked seen only after it has been archived and
// processed, so a crash re-delivers rather than drops.
type Receiver struct {
	client    imapclient.Client
	cfg       models.IngestConfig
	raw       *store.RawStore
	processor *Processor
}

func NewReceiver(client imapclient.Client, cfg models.IngestConfig, raw *store.RawStore, processor *Processor) *Receiver {
	return &Receiver{
		client:    client,
		cfg:       cfg,
		raw:       raw,
		processor: processor,
	}
}

// Poll runs one fetch-and-process cycle. Per-message failures are logged and
// isolated; only connection-level failures are returned.
func (r *Receiver) Poll(ctx context.Context) error {
	if err := r.client.Connect(r.cfg.Imap); err != nil {
		return err
	}
	defer func() {
		_ = r.client.Close()
	}()

	if err := r.client.Login(r.cfg.Login, r.cfg.Password); err != nil {
		return err
	}

	if err := r.client.SelectMailbox(r.cfg.MailBox); err != nil {
		return err
	}

	uids, err := r.client.ListUnseenUIDs(ReceiveWindow)
	if err != nil {
		return err
	}

	if len(uids) == 0 {
		return nil
	}

	logging.Log.Infof("Found %d unseen messages", len(uids))

	for _, uid := range uids {
		if err := r.receiveOne(ctx, uid); err != nil {
			logging.Log.Errorf("Error processing message UID %d: %v", uid, err)
		}
	}

	return nil
}

func (r *Receiver) receiveOne(ctx context.Context, uid uint32) error {
	raw, err := r.client.FetchRaw(uid)
	if err != nil {
		return err
	}

	id := uuid.New().String()

	if err := r.raw.Put(ctx, id, raw); err != nil {
		return err
	}

	if err := r.processor.Process(ctx, id); err != nil {
		// Extraction errors are permanent for this message: mark it seen so
		// it does not poison every later poll. The raw bytes stay archived
		// for inspection. Storage errors leave the message unseen for retry.
		if !extractionError(err) {
			return err
		}
		logging.Log.WithField("trace_id", id).Warnf("Dropping unprocessable message UID %d: %v", uid, err)
	}

	if err := r.client.MarkSeen(uid); err != nil {
		logging.Log.WithField("trace_id", id).Errorf("Error marking message UID %d as seen: %v", uid, err)
	}

	return nil
}

func extractionError(err error) bool {
	return errors.Is(err, extract.ErrMalformedMessage) || errors.Is(err, extract.ErrUnsupportedContent)
}
