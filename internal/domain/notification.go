package domain

import "time"

// DeliveryStatus is the notification lifecycle. Only "sent" is ever produced;
// viewed and replied are reserved extension points carried over from the
// stored format.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliveryViewed  DeliveryStatus = "viewed"
	DeliveryReplied DeliveryStatus = "replied"
)

// NotificationRecord is one fan-out delivery record per (entry, recipient)
// pair. It is written once by the Recorder and never mutated again; ViewedAt
// and Reply stay empty on every current code path.
type NotificationRecord struct {
	ID          string         `json:"id"`
	EntryID     string         `json:"entryId"`
	RecipientID string         `json:"recipientId"`
	SentAt      time.Time      `json:"sentAt"`
	ViewedAt    *time.Time     `json:"viewedAt,omitempty"`
	Status      DeliveryStatus `json:"status"`
	Reply       string         `json:"reply,omitempty"`
}
