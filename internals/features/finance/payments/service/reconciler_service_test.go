package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	lmodel "lyceum_backend/internals/features/finance/ledger/model"
	ledgerservice "lyceum_backend/internals/features/finance/ledger/service"
	pmodel "lyceum_backend/internals/features/finance/payments/model"
)

func paidIncome(amount int64) pmodel.PaymentTransaction {
	return pmodel.PaymentTransaction{
		TransactionID:          "TXN-1",
		TransactionAmountPaise: amount,
		TransactionKind:        pmodel.TransactionKindIncome,
		TransactionStatus:      pmodel.TransactionStatusPaid,
	}
}

func TestContribution(t *testing.T) {
	tests := []struct {
		name   string
		kind   pmodel.TransactionKind
		status pmodel.TransactionStatus
		amount int64
		want   int64
	}{
		{"income paid", pmodel.TransactionKindIncome, pmodel.TransactionStatusPaid, 40_000_00, 40_000_00},
		{"invoice paid", pmodel.TransactionKindInvoice, pmodel.TransactionStatusPaid, 5_000_00, 5_000_00},
		{"income pending", pmodel.TransactionKindIncome, pmodel.TransactionStatusPending, 40_000_00, 0},
		{"income overdue", pmodel.TransactionKindIncome, pmodel.TransactionStatusOverdue, 40_000_00, 0},
		{"expense paid", pmodel.TransactionKindExpense, pmodel.TransactionStatusPaid, 40_000_00, 0},
		{"transfer paid", pmodel.TransactionKindTransfer, pmodel.TransactionStatusPaid, 40_000_00, 0},
		{"bill paid", pmodel.TransactionKindBill, pmodel.TransactionStatusPaid, 40_000_00, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Contribution(pmodel.PaymentTransaction{
				TransactionAmountPaise: tt.amount,
				TransactionKind:        tt.kind,
				TransactionStatus:      tt.status,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

// Edit nominal 40k → 30k harus menghasilkan delta -10k, bukan +30k.
func TestNetDeltaOnEdit(t *testing.T) {
	created := Contribution(paidIncome(40_000_00))
	assert.Equal(t, int64(40_000_00), NetDelta(0, created))

	edited := Contribution(paidIncome(30_000_00))
	assert.Equal(t, int64(-10_000_00), NetDelta(created, edited))

	// replay event yang sama → delta nol, aman diterapkan ulang
	assert.Equal(t, int64(0), NetDelta(edited, edited))
}

func TestNetDeltaOnStatusFlip(t *testing.T) {
	txn := paidIncome(25_000_00)

	// Paid → Pending menarik kembali seluruh kontribusi
	pending := txn
	pending.TransactionStatus = pmodel.TransactionStatusPending
	assert.Equal(t, int64(-25_000_00), NetDelta(Contribution(txn), Contribution(pending)))

	// Pending → Paid menyetor penuh
	assert.Equal(t, int64(25_000_00), NetDelta(Contribution(pending), Contribution(txn)))
}

func TestNetDeltaOnKindChange(t *testing.T) {
	txn := paidIncome(25_000_00)
	expense := txn
	expense.TransactionKind = pmodel.TransactionKindExpense
	assert.Equal(t, int64(-25_000_00), NetDelta(Contribution(txn), Contribution(expense)))
}

/* =========================================================
   Replay semantics lewat store in-memory (permukaan yang sama
   dengan jalur gorm, tanpa Postgres).
========================================================= */

type memReconcilerStore struct {
	entry         *lmodel.LedgerEntry
	contributions map[string]*pmodel.TransactionContribution
	transactions  map[string]pmodel.PaymentTransaction
	parked        []*pmodel.ParkedEvent
	resolveTo     uuid.UUID // uuid.Nil → payer tidak ter-resolve
}

func newMemStore(entry *lmodel.LedgerEntry) *memReconcilerStore {
	return &memReconcilerStore{
		entry:         entry,
		contributions: map[string]*pmodel.TransactionContribution{},
		transactions:  map[string]pmodel.PaymentTransaction{},
		resolveTo:     entry.LedgerEntryID,
	}
}

func (m *memReconcilerStore) ContributionRow(id string) (*pmodel.TransactionContribution, error) {
	c, ok := m.contributions[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memReconcilerStore) CreateContributionRow(c *pmodel.TransactionContribution) error {
	cp := *c
	m.contributions[c.ContributionTransactionID] = &cp
	return nil
}

func (m *memReconcilerStore) SaveContributionRow(c *pmodel.TransactionContribution) error {
	return m.CreateContributionRow(c)
}

func (m *memReconcilerStore) ContributionRowsForEntry(entryID uuid.UUID) ([]pmodel.TransactionContribution, error) {
	var out []pmodel.TransactionContribution
	for _, c := range m.contributions {
		if c.ContributionLedgerEntryID == entryID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memReconcilerStore) LiveTransaction(id string) (*pmodel.PaymentTransaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memReconcilerStore) EntryByID(entryID uuid.UUID) (*lmodel.LedgerEntry, error) {
	if m.entry == nil || m.entry.LedgerEntryID != entryID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.entry
	return &cp, nil
}

func (m *memReconcilerStore) ApplyDelta(entryID uuid.UUID, delta int64, direction lmodel.LedgerEventDirection, transactionID *string) (*lmodel.LedgerEntry, error) {
	if m.entry == nil || m.entry.LedgerEntryID != entryID {
		return nil, ledgerservice.ErrEntryNotFound
	}
	if m.entry.LedgerEntryStatus == lmodel.LedgerStatusVoided {
		return nil, ledgerservice.ErrEntryVoided
	}
	m.entry.LedgerEntryPaidPaise = lmodel.ClampPaid(m.entry.LedgerEntryPaidPaise + delta)
	m.entry.LedgerEntryStatus = lmodel.DeriveStatus(m.entry.LedgerEntryTotalPaise, m.entry.LedgerEntryPaidPaise)
	cp := *m.entry
	return &cp, nil
}

func (m *memReconcilerStore) ResolveTarget(ev TxnEvent) (uuid.UUID, *pmodel.ParkedEvent, error) {
	if m.resolveTo == uuid.Nil {
		parked, err := m.Park(ev, pmodel.ParkedUnresolvedPayer)
		return uuid.Nil, parked, err
	}
	return m.resolveTo, nil, nil
}

func (m *memReconcilerStore) Park(ev TxnEvent, reason pmodel.ParkedReason) (*pmodel.ParkedEvent, error) {
	parked := &pmodel.ParkedEvent{
		ParkedEventTransactionID: ev.Transaction.TransactionID,
		ParkedEventReason:        reason,
	}
	m.parked = append(m.parked, parked)
	return parked, nil
}

// ingest meniru jalur endpoint: cermin row transaksi dulu (void =
// row dibuang), baru rekonsiliasi.
func (m *memReconcilerStore) ingest(t *testing.T, ev TxnEvent) ReconcileOutcome {
	t.Helper()
	if ev.Type == TxnEventVoided {
		delete(m.transactions, ev.Transaction.TransactionID)
	} else {
		m.transactions[ev.Transaction.TransactionID] = ev.Transaction
	}
	out, err := reconcileEvent(m, ev)
	require.NoError(t, err)
	return out
}

func openEntry(total int64) *lmodel.LedgerEntry {
	return &lmodel.LedgerEntry{
		LedgerEntryID:         uuid.New(),
		LedgerEntryTotalPaise: total,
		LedgerEntryStatus:     lmodel.LedgerStatusOutstanding,
	}
}

// create → replay → edit → replay edit → void → replay void: tiap
// replay tidak menggeser state akhir entry.
func TestReconcileReplayIdempotent(t *testing.T) {
	store := newMemStore(openEntry(40_000_00))
	txn := paidIncome(40_000_00)

	store.ingest(t, TxnEvent{Type: TxnEventCreated, Transaction: txn})
	require.Equal(t, int64(40_000_00), store.entry.LedgerEntryPaidPaise)
	require.Equal(t, lmodel.LedgerStatusPaid, store.entry.LedgerEntryStatus)

	store.ingest(t, TxnEvent{Type: TxnEventCreated, Transaction: txn})
	assert.Equal(t, int64(40_000_00), store.entry.LedgerEntryPaidPaise)

	edited := paidIncome(30_000_00)
	store.ingest(t, TxnEvent{Type: TxnEventUpdated, Transaction: edited})
	require.Equal(t, int64(30_000_00), store.entry.LedgerEntryPaidPaise)
	require.Equal(t, lmodel.LedgerStatusPartial, store.entry.LedgerEntryStatus)

	store.ingest(t, TxnEvent{Type: TxnEventUpdated, Transaction: edited})
	assert.Equal(t, int64(30_000_00), store.entry.LedgerEntryPaidPaise)

	store.ingest(t, TxnEvent{Type: TxnEventVoided, Transaction: edited})
	require.Equal(t, int64(0), store.entry.LedgerEntryPaidPaise)
	require.Equal(t, lmodel.LedgerStatusOutstanding, store.entry.LedgerEntryStatus)

	store.ingest(t, TxnEvent{Type: TxnEventVoided, Transaction: edited})
	assert.Equal(t, int64(0), store.entry.LedgerEntryPaidPaise)
}

// Void lalu rebuild: kontribusi yang sudah dibatalkan tidak boleh
// hidup lagi — kedua jalur rekonsiliasi harus sepakat.
func TestRebuildAfterVoidStaysReversed(t *testing.T) {
	store := newMemStore(openEntry(10_000_00))
	txn := paidIncome(10_000_00)

	store.ingest(t, TxnEvent{Type: TxnEventCreated, Transaction: txn})
	require.Equal(t, int64(10_000_00), store.entry.LedgerEntryPaidPaise)

	store.ingest(t, TxnEvent{Type: TxnEventVoided, Transaction: txn})
	require.Equal(t, int64(0), store.entry.LedgerEntryPaidPaise)

	entry, err := rebuildEntry(store, store.entry.LedgerEntryID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.LedgerEntryPaidPaise)
	assert.Equal(t, lmodel.LedgerStatusOutstanding, entry.LedgerEntryStatus)
	assert.Equal(t, int64(0), store.contributions[txn.TransactionID].ContributionAmountPaise)
}

// Event void-nya hilang di jalan (out-of-order/gap): rebuild menutup
// selisihnya dari row transaksi yang masih hidup.
func TestRebuildClosesGapFromMissedVoid(t *testing.T) {
	store := newMemStore(openEntry(10_000_00))
	txn := paidIncome(10_000_00)

	store.ingest(t, TxnEvent{Type: TxnEventCreated, Transaction: txn})
	require.Equal(t, int64(10_000_00), store.entry.LedgerEntryPaidPaise)

	// transaksi dibuang di sumber tapi event-nya tidak pernah sampai
	delete(store.transactions, txn.TransactionID)

	entry, err := rebuildEntry(store, store.entry.LedgerEntryID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.LedgerEntryPaidPaise)

	// rebuild ulang tidak menggeser apa pun
	entry, err = rebuildEntry(store, store.entry.LedgerEntryID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.LedgerEntryPaidPaise)
}

func TestReconcileParksUnresolvedPayer(t *testing.T) {
	store := newMemStore(openEntry(10_000_00))
	store.resolveTo = uuid.Nil

	out, err := reconcileEvent(store, TxnEvent{Type: TxnEventCreated, Transaction: paidIncome(10_000_00)})
	require.NoError(t, err)

	assert.False(t, out.Applied)
	require.NotNil(t, out.Parked)
	assert.Equal(t, pmodel.ParkedUnresolvedPayer, out.Parked.ParkedEventReason)
	assert.Equal(t, int64(0), store.entry.LedgerEntryPaidPaise)
	assert.Empty(t, store.contributions)
}

func TestReconcileParksWhenEntryVoided(t *testing.T) {
	entry := openEntry(10_000_00)
	entry.LedgerEntryStatus = lmodel.LedgerStatusVoided
	store := newMemStore(entry)

	out, err := reconcileEvent(store, TxnEvent{Type: TxnEventCreated, Transaction: paidIncome(10_000_00)})
	require.NoError(t, err)

	assert.False(t, out.Applied)
	require.NotNil(t, out.Parked)
	assert.Equal(t, pmodel.ParkedNoOpenLedgerEntry, out.Parked.ParkedEventReason)
}
