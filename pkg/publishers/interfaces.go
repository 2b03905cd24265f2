package publishers

import "context"

// Publisher delivers export events to a downstream sink (webhook, SQS, SNS, Pub/Sub).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
