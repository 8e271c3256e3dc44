package pubsub

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Publisher delivers one serialized outcome to the notification channel.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// SNSPublisher publishes to an SNS topic.
type SNSPublisher struct {
	client   *sns.Client
	topicARN string
}

func NewSNSPublisher(client *sns.Client, topicARN string) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
	}
}

func (p *SNSPublisher) Publish(ctx context.Context, payload []byte) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("sns: publish to %s: %w", p.topicARN, err)
	}
	return nil
}
