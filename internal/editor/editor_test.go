package editor

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memKV) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestEditor(t *testing.T) (*Editor, *store.DraftStore) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	drafts := store.NewDraftStore(&memKV{data: make(map[string][]byte)}, store.NewNotifier(), logger)
	return New(drafts, logger, Config{NumberPrefix: "INV", DueDays: 30}), drafts
}

func fillValid(e *Editor) {
	e.SetField(domain.FieldInvoiceNumber, "INV-1234")
	e.SetField(domain.FieldClientName, "ACME Corp")
	e.UpdateItem(e.Invoice().Items[0].ID, ItemDescription, "Consulting")
}

func TestNew_StartsEditingWithBlankInvoice(t *testing.T) {
	e, _ := newTestEditor(t)

	assert.Equal(t, ModeEditing, e.Mode())
	assert.True(t, strings.HasPrefix(e.Invoice().InvoiceNumber, "INV-"))
	require.Len(t, e.Invoice().Items, 1)
	assert.Zero(t, e.Invoice().Total)
}

func TestSetField_NumericCoercion(t *testing.T) {
	e, _ := newTestEditor(t)
	e.UpdateItem(1, ItemQuantity, "2")
	e.UpdateItem(1, ItemPrice, "10")

	e.SetField(domain.FieldTaxRate, "10")
	assert.Equal(t, 2.0, e.Invoice().TaxAmount)

	// Unparseable input coerces to zero instead of erroring.
	e.SetField(domain.FieldTaxRate, "ten percent")
	assert.Zero(t, e.Invoice().TaxRate)
	assert.Zero(t, e.Invoice().TaxAmount)
}

func TestSetField_ClearsFieldError(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetField(domain.FieldInvoiceNumber, "")

	require.False(t, e.Preview())
	require.NotEmpty(t, e.FieldError(domain.FieldInvoiceNumber))

	e.SetField(domain.FieldInvoiceNumber, "INV-1234")
	assert.Empty(t, e.FieldError(domain.FieldInvoiceNumber))
	// Errors for other fields stay until edited or revalidated.
	assert.NotEmpty(t, e.FieldError(domain.FieldClientName))
}

func TestUpdateItem_RecomputesTotals(t *testing.T) {
	e, _ := newTestEditor(t)
	e.UpdateItem(1, ItemQuantity, "2")
	e.UpdateItem(1, ItemPrice, "10")

	second := e.AddItem()
	e.UpdateItem(second, ItemQuantity, "1")
	e.UpdateItem(second, ItemPrice, "5")

	e.SetField(domain.FieldTaxRate, "10")
	e.SetField(domain.FieldDiscount, "3")

	inv := e.Invoice()
	assert.Equal(t, 25.0, inv.Subtotal)
	assert.Equal(t, 2.5, inv.TaxAmount)
	assert.Equal(t, 24.5, inv.Total)
}

func TestRemoveItem_KeepsAtLeastOne(t *testing.T) {
	e, _ := newTestEditor(t)
	assert.False(t, e.RemoveItem(1))

	second := e.AddItem()
	assert.True(t, e.RemoveItem(second))
	assert.False(t, e.RemoveItem(1))
	assert.Len(t, e.Invoice().Items, 1)
}

func TestPreview_GatedByValidation(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetField(domain.FieldInvoiceNumber, "")

	assert.False(t, e.Preview())
	assert.Equal(t, ModeEditing, e.Mode())
	assert.False(t, e.Errors().OK())

	fillValid(e)
	assert.True(t, e.Preview())
	assert.Equal(t, ModePreviewing, e.Mode())
	assert.True(t, e.Errors().OK())

	e.Edit()
	assert.Equal(t, ModeEditing, e.Mode())
}

func TestSaveDraft_Ungated(t *testing.T) {
	ctx := context.Background()
	e, drafts := newTestEditor(t)
	e.SetField(domain.FieldInvoiceNumber, "") // invalid on purpose

	e.SaveDraft(ctx)

	saved := drafts.List(ctx)
	require.Len(t, saved, 1)
	assert.Equal(t, e.Invoice().ID, saved[0].ID)
}

func TestSaveDraft_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	e, drafts := newTestEditor(t)
	e.SetField(domain.FieldClientName, "ACME")
	e.SaveDraft(ctx)

	e.SetField(domain.FieldClientName, "Globex")

	saved := drafts.List(ctx)
	require.Len(t, saved, 1)
	assert.Equal(t, "ACME", saved[0].Client.Name)
}

func TestLoadDraft_ReplacesInvoice(t *testing.T) {
	e, _ := newTestEditor(t)

	d := domain.NewInvoice("INV-9999", 30)
	d.Client.Name = "Globex"
	d.Items[0].Description = "Audit"
	d.Items[0].Quantity = 3
	d.Items[0].Price = 200

	e.Preview() // force an error map to prove loading clears it
	e.LoadDraft(d)

	assert.Equal(t, ModeEditing, e.Mode())
	assert.Equal(t, "INV-9999", e.Invoice().InvoiceNumber)
	assert.Equal(t, 600.0, e.Invoice().Total, "totals recomputed on load")
	assert.True(t, e.Errors().OK())

	// The editor works on a copy, not the caller's value.
	e.SetField(domain.FieldClientName, "Changed")
	assert.Equal(t, "Globex", d.Client.Name)
}

func TestSubmit_InvalidBlocked(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t)
	e.SetField(domain.FieldInvoiceNumber, "")

	finalized, ok := e.Submit(ctx)
	assert.False(t, ok)
	assert.Nil(t, finalized)
	assert.Equal(t, ModeEditing, e.Mode())
	assert.False(t, e.Errors().OK())
}

func TestSubmit_ResetsToFreshInvoice(t *testing.T) {
	ctx := context.Background()
	e, drafts := newTestEditor(t)
	fillValid(e)
	e.UpdateItem(1, ItemQuantity, "2")
	e.UpdateItem(1, ItemPrice, "10")
	e.SetField(domain.FieldNotes, "net 30")
	e.SaveDraft(ctx)

	oldID := e.Invoice().ID
	oldNumber := e.Invoice().InvoiceNumber

	finalized, ok := e.Submit(ctx)
	require.True(t, ok)
	require.NotNil(t, finalized)
	assert.Equal(t, oldID, finalized.ID)
	assert.Equal(t, 20.0, finalized.Total)

	inv := e.Invoice()
	assert.NotEqual(t, oldID, inv.ID)
	assert.NotEqual(t, oldNumber, inv.InvoiceNumber)
	require.Len(t, inv.Items, 1)
	assert.Empty(t, inv.Items[0].Description)
	assert.Zero(t, inv.Subtotal)
	assert.Zero(t, inv.TaxAmount)
	assert.Zero(t, inv.Total)
	assert.Empty(t, inv.Notes)
	// Client carries over for the next invoice.
	assert.Equal(t, "ACME Corp", inv.Client.Name)

	// The submitted invoice's draft is gone from the store.
	assert.Empty(t, drafts.List(ctx))
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 12.5, ParseAmount("12.5"))
	assert.Equal(t, 3.0, ParseAmount("  3 "))
	assert.Zero(t, ParseAmount(""))
	assert.Zero(t, ParseAmount("abc"))
}
