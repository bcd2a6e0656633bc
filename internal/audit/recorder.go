// Package audit appends immutable activity records and fans out one
// notification per top-administrator account. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"syndik/internal/domain"
	"syndik/internal/platform/clientmeta"
	"syndik/internal/platform/metrics"
	"syndik/internal/storage"
)

// Notifier delivers one notification to one recipient. Delivery is
// best-effort: the recorder invokes it and moves on, it never retries and
// never surfaces delivery failures to the caller of Record.
type Notifier interface {
	Send(ctx context.Context, recipient domain.Account, entry domain.AuditEntry) error
}

// Recorder persists audit entries and fans notifications out to every account
// holding the top-administrator role.
type Recorder struct {
	store    storage.Store
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string
}

// Option configures a Recorder.
type Option func(*Recorder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithClock overrides the timestamp source for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDFunc overrides id generation for tests.
func WithIDFunc(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

func NewRecorder(store storage.Store, notifier Notifier, opts ...Option) *Recorder {
	r := &Recorder{
		store:    store,
		notifier: notifier,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record runs the full registration sequence, strictly in order:
//
//  1. assign id, timestamp, status=pending
//  2. append to the audit collection and persist
//  3. select every account with the top-administrator role
//  4. per recipient, append a notification record (persisting after each
//     append, so a crash mid-fan-out never corrupts what is already written)
//  5. invoke the notifier per recipient, fire-and-forget
//  6. flip the entry pending -> notified and persist
//
// A reader observing the collections between steps can therefore never see a
// notified entry with zero notifications, nor a notification referencing an
// entry that is not yet present. Zero recipients is a silent no-op fan-out;
// the entry still ends up notified. Storage errors propagate to the caller,
// which can then distinguish "recorded" from "failed before persisting".
//
// Duplicate calls with equal drafts are not deduplicated. There is no locking
// across concurrent Record calls; two callers doing read-modify-write on the
// same collection can lose an update. That matches the single-operator
// assumption of the original dashboard and is documented under test rather
// than fixed here.
func (r *Recorder) Record(ctx context.Context, draft domain.EntryDraft) (domain.AuditEntry, error) {
	entry := domain.AuditEntry{
		ID:            r.newID(),
		Operation:     draft.Operation,
		Entity:        draft.Entity,
		Description:   draft.Description,
		ActorID:       draft.ActorID,
		ActorName:     draft.ActorName,
		ActorRole:     draft.ActorRole,
		CreatedAt:     r.now(),
		Detail:        draft.Detail,
		OriginIP:      draft.OriginIP,
		OriginBrowser: draft.OriginBrowser,
		Status:        domain.EntryPending,
		Severity:      draft.Severity,
	}
	if entry.OriginIP == "" {
		entry.OriginIP = clientmeta.ClientIP(ctx)
	}
	if entry.OriginBrowser == "" {
		entry.OriginBrowser = clientmeta.Browser(ctx)
	}

	entries, err := storage.LoadCollection[domain.AuditEntry](ctx, r.store, storage.KeyAuditEntries)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("load audit entries: %w", err)
	}
	entries = append(entries, entry)
	if err := storage.SaveCollection(ctx, r.store, storage.KeyAuditEntries, entries); err != nil {
		return domain.AuditEntry{}, fmt.Errorf("persist audit entry: %w", err)
	}

	if err := r.fanOut(ctx, entry); err != nil {
		return domain.AuditEntry{}, err
	}

	// Status flip happens after fan-out regardless of whether any recipient
	// existed. Re-save the collection we already hold; concurrent writers are
	// an accepted race.
	entry.Status = domain.EntryNotified
	entries[len(entries)-1] = entry
	if err := storage.SaveCollection(ctx, r.store, storage.KeyAuditEntries, entries); err != nil {
		return domain.AuditEntry{}, fmt.Errorf("mark entry notified: %w", err)
	}

	r.metrics.IncAuditEntriesRecorded()
	return entry, nil
}

func (r *Recorder) fanOut(ctx context.Context, entry domain.AuditEntry) error {
	accounts, err := storage.LoadCollection[domain.Account](ctx, r.store, storage.KeyAccounts)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	var records []domain.NotificationRecord
	loaded := false
	for _, acct := range accounts {
		if acct.Role != domain.RoleTopAdministrator {
			continue
		}
		if !loaded {
			records, err = storage.LoadCollection[domain.NotificationRecord](ctx, r.store, storage.KeyNotificationRecords)
			if err != nil {
				return fmt.Errorf("load notification records: %w", err)
			}
			loaded = true
		}

		record := domain.NotificationRecord{
			ID:          r.newID(),
			EntryID:     entry.ID,
			RecipientID: acct.ID,
			SentAt:      r.now(),
			Status:      domain.DeliverySent,
		}
		records = append(records, record)
		if err := storage.SaveCollection(ctx, r.store, storage.KeyNotificationRecords, records); err != nil {
			return fmt.Errorf("persist notification record: %w", err)
		}

		if r.notifier != nil {
			if err := r.notifier.Send(ctx, acct, entry); err != nil {
				// Best-effort delivery: log and keep going, the status flip
				// must not be blocked.
				r.logger.WarnContext(ctx, "notification delivery failed",
					"entry_id", entry.ID,
					"recipient_id", acct.ID,
					"error", err,
				)
			}
		}
		r.metrics.IncNotificationsSent()
	}
	return nil
}
