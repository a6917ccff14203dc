package store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/andy/billcraft/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV is an in-memory KV with failure injection.
type memKV struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setCall int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memKV) Set(ctx context.Context, key string, value []byte) error {
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(kv KV) *DraftStore {
	return NewDraftStore(kv, NewNotifier(), testLogger())
}

func draft(id, number string) *domain.Invoice {
	inv := domain.NewInvoice(number, 30)
	inv.ID = id
	return inv
}

func TestList_Empty(t *testing.T) {
	s := newTestStore(newMemKV())
	assert.Empty(t, s.List(context.Background()))
}

func TestUpsert_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemKV())

	d := draft("a1", "INV-0001")
	d.Client.Name = "ACME"
	d.Items[0].Description = "Consulting"
	d.Items[0].Price = 100
	d.Recalculate()
	s.Upsert(ctx, d)

	drafts := s.List(ctx)
	require.Len(t, drafts, 1)
	assert.Equal(t, "a1", drafts[0].ID)
	assert.Equal(t, "INV-0001", drafts[0].InvoiceNumber)
	assert.Equal(t, "ACME", drafts[0].Client.Name)
	assert.Equal(t, 100.0, drafts[0].Total)
}

func TestUpsert_ReplacesNotDuplicates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemKV())

	s.Upsert(ctx, draft("a1", "INV-0001"))

	updated := draft("a1", "INV-0001-rev2")
	s.Upsert(ctx, updated)

	drafts := s.List(ctx)
	require.Len(t, drafts, 1)
	assert.Equal(t, "INV-0001-rev2", drafts[0].InvoiceNumber)
}

func TestUpsert_AppendsNewIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemKV())

	s.Upsert(ctx, draft("a1", "INV-0001"))
	s.Upsert(ctx, draft("b2", "INV-0002"))

	drafts := s.List(ctx)
	require.Len(t, drafts, 2)
	// Insertion order is preserved.
	assert.Equal(t, "a1", drafts[0].ID)
	assert.Equal(t, "b2", drafts[1].ID)
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemKV())

	s.Upsert(ctx, draft("a1", "INV-0001"))
	s.Delete(ctx, "a1")
	assert.Empty(t, s.List(ctx))

	// Second delete of the same ID is a no-op, not an error.
	s.Delete(ctx, "a1")
	assert.Empty(t, s.List(ctx))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemKV())
	s.Upsert(ctx, draft("a1", "INV-0001"))

	found := s.Get(ctx, "a1")
	require.NotNil(t, found)
	assert.Equal(t, "INV-0001", found.InvoiceNumber)
	assert.Nil(t, s.Get(ctx, "zz"))
}

func TestList_CorruptBlobIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[DraftsKey] = []byte("{not json")

	s := newTestStore(kv)
	assert.Empty(t, s.List(ctx))

	// The store recovers: the next write replaces the corrupt blob.
	s.Upsert(ctx, draft("a1", "INV-0001"))
	assert.Len(t, s.List(ctx), 1)
}

func TestList_ReadErrorIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk gone")
	s := newTestStore(kv)
	assert.Empty(t, s.List(context.Background()))
}

func TestUpsert_WriteErrorIsSilent(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.setErr = errors.New("quota exceeded")

	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe()
	defer cancel()

	s := NewDraftStore(kv, notifier, testLogger())
	s.Upsert(ctx, draft("a1", "INV-0001"))

	assert.Equal(t, 1, kv.setCall)
	// Nothing persisted, nothing broadcast.
	select {
	case <-ch:
		t.Fatal("unexpected change notification after failed write")
	default:
	}
}

func TestMutations_Broadcast(t *testing.T) {
	ctx := context.Background()
	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe()
	defer cancel()

	s := NewDraftStore(newMemKV(), notifier, testLogger())

	s.Upsert(ctx, draft("a1", "INV-0001"))
	select {
	case <-ch:
	default:
		t.Fatal("expected change notification after upsert")
	}

	s.Delete(ctx, "a1")
	select {
	case <-ch:
	default:
		t.Fatal("expected change notification after delete")
	}
}
