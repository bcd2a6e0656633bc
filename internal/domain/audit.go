package domain

import (
	"encoding/json"
	"time"
)

// Operation is the kind of state change an audit entry describes.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationEdit   Operation = "edit"
	OperationDelete Operation = "delete"

	// Login and logout are reserved operation kinds. No code path emits them;
	// they exist so stored entries from a future session-auditing feature
	// decode without migration.
	OperationLogin  Operation = "login"
	OperationLogout Operation = "logout"
)

// Severity is assigned by the caller that constructs the entry, never
// computed here.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// EntryStatus is the audit entry lifecycle. Only the Recorder transitions it,
// and only from pending to notified.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryNotified EntryStatus = "notified"
	// EntryViewed is reserved; nothing transitions an entry to it.
	EntryViewed EntryStatus = "viewed"
)

// AuditEntry is the immutable record of one state-changing action. Actor
// fields are denormalized at write time. Once created, only Status is ever
// mutated (pending -> notified), by the Recorder within the same Record call.
type AuditEntry struct {
	ID            string          `json:"id"`
	Operation     Operation       `json:"operation"`
	Entity        string          `json:"entity"`
	Description   string          `json:"description"`
	ActorID       string          `json:"actorId"`
	ActorName     string          `json:"actorName"`
	ActorRole     Role            `json:"actorRole"`
	CreatedAt     time.Time       `json:"createdAt"`
	Detail        json.RawMessage `json:"detail,omitempty"`
	OriginIP      string          `json:"originIp,omitempty"`
	OriginBrowser string          `json:"originBrowser,omitempty"`
	Status        EntryStatus     `json:"status"`
	Severity      Severity        `json:"severity"`
}

// EntryDraft is what callers hand to the Recorder: an AuditEntry without the
// fields the Recorder assigns (id, timestamp, status).
type EntryDraft struct {
	Operation     Operation
	Entity        string
	Description   string
	ActorID       string
	ActorName     string
	ActorRole     Role
	Detail        json.RawMessage
	OriginIP      string
	OriginBrowser string
	Severity      Severity
}
