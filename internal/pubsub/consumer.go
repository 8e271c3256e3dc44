package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"email-analysis/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Handler processes one delivered payload. Returning an error leaves the
// message on the queue for redelivery.
type Handler func(ctx context.Context, payload []byte) error

// SQSConsumer long-polls a queue subscribed to the outcome topic and hands
// each payload to the handler.
type SQSConsumer struct {
	client   *sqs.Client
	queueURL string
}

func NewSQSConsumer(client *sqs.Client, queueURL string) *SQSConsumer {
	return &SQSConsumer{
		client:   client,
		queueURL: queueURL,
	}
}

// snsEnvelope is the wrapper SNS puts around a message delivered to an SQS
// subscription; Message carries the published payload verbatim.
type snsEnvelope struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

// Run receives until the context is canceled. Messages are deleted only
// after the handler succeeds.
func (c *SQSConsumer) Run(ctx context.Context, handle Handler) error {
	logging.Log.Infof("Listening for messages on %s", c.queueURL)

	for {
		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("sqs: receive from %s: %w", c.queueURL, err)
		}

		for _, msg := range out.Messages {
			payload := unwrapEnvelope([]byte(aws.ToString(msg.Body)))

			if err := handle(ctx, payload); err != nil {
				logging.Log.Errorf("Handler failed, leaving message for redelivery: %v", err)
				continue
			}

			_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(c.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			})
			if err != nil {
				logging.Log.Errorf("Failed to delete message: %v", err)
			}
		}
	}
}

// unwrapEnvelope extracts the published payload from an SNS delivery
// envelope; bodies that are not envelopes pass through unchanged.
func unwrapEnvelope(body []byte) []byte {
	var env snsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return body
	}
	if env.Type != "Notification" || env.Message == "" {
		return body
	}
	return []byte(env.Message)
}
