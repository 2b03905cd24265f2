package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/phenixzain/portfolio-blog/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func testEvent() Event {
	return Event{RunID: "run-1", Username: "phenixzain", Mode: "grid", Total: 2}
}

func TestSQSPublisherSendsEvent(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://sqs.local/queue", client: client, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["run_id"]
	if !ok || aws.ToString(attr.StringValue) != "run-1" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("run_id attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"username":"phenixzain"`) {
		t.Fatalf("body missing username: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherError(t *testing.T) {
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: &fakeSQSClient{err: errors.New("boom")}, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSNSPublisherSendsEvent(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:us-east-1:000000000000:exports", client: client, log: logger.NopLogger{}}

	evt := testEvent()
	evt.Username = ""
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:us-east-1:000000000000:exports" {
		t.Fatalf("TopicArn = %s", got)
	}
	if _, ok := client.input.MessageAttributes["username"]; ok {
		t.Fatal("empty attributes must be omitted")
	}
	if attr := client.input.MessageAttributes["mode"]; aws.ToString(attr.StringValue) != "grid" {
		t.Fatalf("mode attribute wrong: %#v", attr)
	}
}

func TestSNSPublisherError(t *testing.T) {
	pub := &snsPublisher{id: "topic", topicARN: "arn", client: &fakeSNSClient{err: errors.New("boom")}, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSQSPublisherWithStaticCredentials(t *testing.T) {
	pub, err := newSQSPublisher(context.Background(), PublisherConfig{
		ID:   "queue",
		Type: TypeSQS,
		SQS: &SQSPublisherConfig{
			QueueURL: "http://localhost:4566/000000000000/exports",
			AWSOptions: AWSOptions{
				Region:          "us-east-1",
				Endpoint:        "http://localhost:4566",
				AccessKeyID:     "test",
				SecretAccessKey: "test",
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if pub.Type() != TypeSQS || pub.ID() != "queue" {
		t.Fatalf("unexpected publisher %s/%s", pub.Type(), pub.ID())
	}
}
