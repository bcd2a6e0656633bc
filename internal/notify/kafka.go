package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"syndik/internal/domain"
)

// Kafka publishes one message per delivery to a topic consumed by an external
// email/WhatsApp gateway. Production is asynchronous with a nil promise, so
// delivery failures are invisible to the recorder, matching the
// fire-and-forget contract.
type Kafka struct {
	client *kgo.Client
	topic  string
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchMaxBytes(1 << 20),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// message is the wire payload. Field names match the stored notification and
// entry shapes so the consumer can correlate both.
type message struct {
	EntryID     string          `json:"entryId"`
	RecipientID string          `json:"recipientId"`
	Recipient   string          `json:"recipient"`
	Email       string          `json:"email"`
	Operation   string          `json:"operation"`
	Entity      string          `json:"entity"`
	Description string          `json:"description"`
	Severity    string          `json:"severity"`
	ActorName   string          `json:"actorName"`
	Detail      json.RawMessage `json:"detail,omitempty"`
	SentAt      time.Time       `json:"sentAt"`
}

func (k *Kafka) Send(ctx context.Context, recipient domain.Account, entry domain.AuditEntry) error {
	raw, err := json.Marshal(message{
		EntryID:     entry.ID,
		RecipientID: recipient.ID,
		Recipient:   RecipientName(recipient),
		Email:       recipient.Email,
		Operation:   string(entry.Operation),
		Entity:      entry.Entity,
		Description: entry.Description,
		Severity:    string(entry.Severity),
		ActorName:   entry.ActorName,
		Detail:      entry.Detail,
		SentAt:      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	// Nil promise: produce results are discarded.
	k.client.Produce(ctx, &kgo.Record{Key: []byte(entry.ID), Value: raw}, nil)
	return nil
}

// Close flushes buffered records and releases the client.
func (k *Kafka) Close() {
	k.client.Close()
}
