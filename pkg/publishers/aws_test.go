package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
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

func sampleEvent() CatalogEvent {
	return NewCatalogEvent("https://example.com/recipes.json", TriggerWatch, []domain.Recipe{
		{Cuisine: "Malaysian", Name: "Apam Balik", UUID: "0c6ca6e7"},
		{Cuisine: "British", Name: "Tart", UUID: "599344f4"},
	})
}

func TestSQSPublisherSendsEvent(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://example.com/queue", client: client, log: &logger.NopLogger{}}
	evt := sampleEvent()

	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["event_id"]
	if !ok || aws.ToString(attr.StringValue) != evt.ID || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("event_id attribute missing or wrong: %#v", attr)
	}

	var body CatalogEvent
	if err := json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RecipeCount != 2 || len(body.Cuisines) != 2 || body.Cuisines[0] != "British" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	cause := errors.New("boom")
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: &fakeSQSClient{err: cause}, log: &logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestSNSPublisherSendsEvent(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:::topic", client: client, log: &logger.NopLogger{}}
	evt := sampleEvent()

	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["trigger"]
	if !ok || aws.ToString(attr.StringValue) != TriggerWatch {
		t.Fatalf("trigger attribute missing or wrong: %#v", attr)
	}
	if _, ok := client.input.MessageAttributes["source"]; !ok {
		t.Fatal("source attribute missing")
	}
}

func TestSNSPublisherSendError(t *testing.T) {
	pub := &snsPublisher{id: "topic", topicARN: "arn", client: &fakeSNSClient{err: errors.New("boom")}, log: &logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error from Publish")
	}
}

func TestLoadAWSConfigStaticCredentials(t *testing.T) {
	cfg, err := loadAWSConfig(context.Background(), "ap-south-1", &AWSCredentials{
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("loadAWSConfig: %v", err)
	}
	if cfg.Region != "ap-south-1" {
		t.Fatalf("region = %s", cfg.Region)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Fatalf("static credentials not used, got %s", creds.AccessKeyID)
	}
}

func TestNewAWSPublishersRequireConfig(t *testing.T) {
	if _, err := newSQSPublisher(context.Background(), PublisherConfig{ID: "q"}, nil); err == nil {
		t.Fatal("expected sqs config error")
	}
	if _, err := newSNSPublisher(context.Background(), PublisherConfig{ID: "t"}, nil); err == nil {
		t.Fatal("expected sns config error")
	}
}
