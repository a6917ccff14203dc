package store

import (
	"context"
	"encoding/json"

	"github.com/andy/billcraft/internal/domain"
	"github.com/sirupsen/logrus"
)

// DraftsKey is the well-known key holding the serialized draft collection.
const DraftsKey = "invoiceDrafts"

// DraftStore persists invoice draft snapshots as one JSON collection under
// DraftsKey. Lookups are linear scans by invoice ID. Persistence failures are
// never fatal: reads degrade to an empty collection, writes become logged
// no-ops, and the editing session continues either way.
type DraftStore struct {
	kv       KV
	notifier *Notifier
	log      *logrus.Logger
}

// NewDraftStore creates a new DraftStore
func NewDraftStore(kv KV, notifier *Notifier, logger *logrus.Logger) *DraftStore {
	return &DraftStore{kv: kv, notifier: notifier, log: logger}
}

// Notifier exposes the change-notification surface so views can subscribe.
func (s *DraftStore) Notifier() *Notifier {
	return s.notifier
}

// List returns the current draft collection. An absent or corrupt blob is
// treated as "no drafts", not an error.
func (s *DraftStore) List(ctx context.Context) []domain.Invoice {
	data, err := s.kv.Get(ctx, DraftsKey)
	if err != nil {
		s.log.WithError(err).Warn("failed to read drafts, treating as empty")
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var drafts []domain.Invoice
	if err := json.Unmarshal(data, &drafts); err != nil {
		s.log.WithError(err).Warn("corrupt drafts payload, treating as empty")
		return nil
	}
	return drafts
}

// Get returns the draft with the given ID, or nil.
func (s *DraftStore) Get(ctx context.Context, id string) *domain.Invoice {
	for _, d := range s.List(ctx) {
		if d.ID == id {
			return &d
		}
	}
	return nil
}

// Upsert replaces the draft with d's ID, or appends d if no such draft
// exists, then persists the whole collection and broadcasts a change.
func (s *DraftStore) Upsert(ctx context.Context, d *domain.Invoice) {
	drafts := s.List(ctx)

	replaced := false
	for idx := range drafts {
		if drafts[idx].ID == d.ID {
			drafts[idx] = *d
			replaced = true
			break
		}
	}
	if !replaced {
		drafts = append(drafts, *d)
	}

	s.persist(ctx, drafts)
}

// Delete removes the draft with the given ID. Deleting an unknown ID is a
// no-op, not an error; the store still re-persists and notifies so views
// converge.
func (s *DraftStore) Delete(ctx context.Context, id string) {
	drafts := s.List(ctx)

	kept := drafts[:0]
	for _, d := range drafts {
		if d.ID != id {
			kept = append(kept, d)
		}
	}

	s.persist(ctx, kept)
}

func (s *DraftStore) persist(ctx context.Context, drafts []domain.Invoice) {
	if drafts == nil {
		drafts = []domain.Invoice{}
	}

	data, err := json.Marshal(drafts)
	if err != nil {
		s.log.WithError(err).Error("failed to encode drafts")
		return
	}
	if err := s.kv.Set(ctx, DraftsKey, data); err != nil {
		s.log.WithError(err).Error("failed to persist drafts")
		return
	}

	s.notifier.Broadcast()
}
