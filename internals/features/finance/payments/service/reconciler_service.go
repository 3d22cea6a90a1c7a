// file: internals/features/finance/payments/service/reconciler_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	contactservice "lyceum_backend/internals/features/finance/contacts/service"
	lmodel "lyceum_backend/internals/features/finance/ledger/model"
	ledgerservice "lyceum_backend/internals/features/finance/ledger/service"
	pmodel "lyceum_backend/internals/features/finance/payments/model"
)

/* =========================================================
   PAYMENT RECONCILER

   Menerjemahkan lifecycle transaksi (create/edit/void) menjadi
   mutasi ApplyPayment pada ledger entry yang tepat. Peta
   transaksi→entry stabil lewat transaction_contributions, dan
   delta selalu di-net terhadap kontribusi terakhir supaya edit
   atau replay tidak pernah double-count. Kegagalan mapping
   diparkir, tidak pernah di-drop.
========================================================= */

type TxnEventType string

const (
	TxnEventCreated TxnEventType = "created"
	TxnEventUpdated TxnEventType = "updated"
	TxnEventVoided  TxnEventType = "voided"
)

type TxnEvent struct {
	Type        TxnEventType              `json:"type"`
	Transaction pmodel.PaymentTransaction `json:"transaction"`
}

type ReconcileOutcome struct {
	Applied bool
	Parked  *pmodel.ParkedEvent
	Entry   *lmodel.LedgerEntry
}

// Contribution: hanya transaksi Paid berjenis Income/Invoice yang
// masuk ke paid; selain itu kontribusinya 0.
func Contribution(t pmodel.PaymentTransaction) int64 {
	if t.TransactionStatus != pmodel.TransactionStatusPaid {
		return 0
	}
	if t.TransactionKind != pmodel.TransactionKindIncome && t.TransactionKind != pmodel.TransactionKindInvoice {
		return 0
	}
	return t.TransactionAmountPaise
}

// NetDelta: selisih yang harus diterapkan ke entry — tidak pernah
// nominal penuh yang baru.
func NetDelta(lastContribution, newContribution int64) int64 {
	return newContribution - lastContribution
}

/* =========================================================
   STORAGE SEAM — permukaan baris yang disentuh reconciler.
   Produksi memakai gorm dalam satu transaksi per event
   (gormReconcilerStore di bawah).
========================================================= */

type reconcilerStore interface {
	// ContributionRow mengembalikan nil saat transaksi belum terpetakan.
	ContributionRow(transactionID string) (*pmodel.TransactionContribution, error)
	CreateContributionRow(c *pmodel.TransactionContribution) error
	SaveContributionRow(c *pmodel.TransactionContribution) error
	ContributionRowsForEntry(entryID uuid.UUID) ([]pmodel.TransactionContribution, error)

	// LiveTransaction mengembalikan nil saat row transaksi sudah dibuang.
	LiveTransaction(transactionID string) (*pmodel.PaymentTransaction, error)

	EntryByID(entryID uuid.UUID) (*lmodel.LedgerEntry, error)
	ApplyDelta(entryID uuid.UUID, deltaPaise int64, direction lmodel.LedgerEventDirection, transactionID *string) (*lmodel.LedgerEntry, error)

	// ResolveTarget memetakan event ke entry; gagal resolve → parkir.
	ResolveTarget(ev TxnEvent) (uuid.UUID, *pmodel.ParkedEvent, error)
	Park(ev TxnEvent, reason pmodel.ParkedReason) (*pmodel.ParkedEvent, error)
}

// HandleEvent memproses satu event transaksi secara atomik.
// Idempoten per (transaction_id, kontribusi terakhir): replay event
// yang sama menghasilkan delta 0.
func HandleEvent(ctx context.Context, db *gorm.DB, ev TxnEvent) (ReconcileOutcome, error) {
	var out ReconcileOutcome
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = reconcileEvent(&gormReconcilerStore{tx: tx}, ev)
		return err
	})
	return out, err
}

func reconcileEvent(store reconcilerStore, ev TxnEvent) (ReconcileOutcome, error) {
	var out ReconcileOutcome

	newContribution := int64(0)
	if ev.Type != TxnEventVoided {
		newContribution = Contribution(ev.Transaction)
	}

	contrib, err := store.ContributionRow(ev.Transaction.TransactionID)
	if err != nil {
		return out, err
	}

	if contrib == nil {
		if newContribution == 0 {
			// void/non-kontributif untuk transaksi yang belum pernah
			// dipetakan — tidak ada yang perlu dimutasi
			out.Applied = true
			return out, nil
		}
		entryID, parked, err := store.ResolveTarget(ev)
		if err != nil {
			return out, err
		}
		if parked != nil {
			out.Parked = parked
			return out, nil
		}
		contrib = &pmodel.TransactionContribution{
			ContributionTransactionID: ev.Transaction.TransactionID,
			ContributionLedgerEntryID: entryID,
			ContributionAmountPaise:   0,
		}
		if err := store.CreateContributionRow(contrib); err != nil {
			return out, err
		}
	}

	delta := NetDelta(contrib.ContributionAmountPaise, newContribution)
	if delta == 0 {
		out.Applied = true
		if entry, err := store.EntryByID(contrib.ContributionLedgerEntryID); err == nil {
			out.Entry = entry
		}
		return out, nil
	}

	direction := lmodel.LedgerEventCredit
	if delta < 0 {
		direction = lmodel.LedgerEventReverse
	}

	txnID := ev.Transaction.TransactionID
	entry, err := store.ApplyDelta(contrib.ContributionLedgerEntryID, delta, direction, &txnID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrEntryVoided) {
			// entry keburu voided — parkir supaya operator memutuskan
			parked, perr := store.Park(ev, pmodel.ParkedNoOpenLedgerEntry)
			if perr != nil {
				return out, perr
			}
			out.Parked = parked
			return out, nil
		}
		return out, err
	}

	contrib.ContributionAmountPaise = newContribution
	if err := store.SaveContributionRow(contrib); err != nil {
		return out, err
	}

	out.Applied = true
	out.Entry = entry
	return out, nil
}

/* =========================================================
   FULL RECOMPUTE — fallback saat delivery out-of-order atau ada
   gap: paid diturunkan ulang dari SELURUH kontribusi valid, bukan
   dari delta berurutan. Aman di-rerun kapan pun (batch idempoten).
========================================================= */

func Rebuild(ctx context.Context, db *gorm.DB, entryID uuid.UUID) (*lmodel.LedgerEntry, error) {
	var result *lmodel.LedgerEntry
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = rebuildEntry(&gormReconcilerStore{tx: tx}, entryID)
		return err
	})
	return result, err
}

func rebuildEntry(store reconcilerStore, entryID uuid.UUID) (*lmodel.LedgerEntry, error) {
	contribs, err := store.ContributionRowsForEntry(entryID)
	if err != nil {
		return nil, err
	}

	// re-derive tiap kontribusi dari row transaksi yang hidup;
	// row yang sudah dibuang (transaksi void/hapus) gugur ke 0
	var sum int64
	for i := range contribs {
		live, err := store.LiveTransaction(contribs[i].ContributionTransactionID)
		if err != nil {
			return nil, err
		}
		fresh := int64(0)
		if live != nil {
			fresh = Contribution(*live)
		}
		if fresh != contribs[i].ContributionAmountPaise {
			contribs[i].ContributionAmountPaise = fresh
			if err := store.SaveContributionRow(&contribs[i]); err != nil {
				return nil, err
			}
		}
		sum += fresh
	}

	entry, err := store.EntryByID(entryID)
	if err != nil {
		return nil, err
	}
	delta := sum - entry.LedgerEntryPaidPaise
	if delta == 0 {
		return entry, nil
	}
	return store.ApplyDelta(entryID, delta, lmodel.LedgerEventRebuild, nil)
}

/* =========================================================
   PARKED QUEUE — antrian operator
========================================================= */

// RetryParked menjalankan ulang event yang diparkir; bila kali ini
// berhasil diterapkan, parkiran ditandai resolved.
func RetryParked(ctx context.Context, db *gorm.DB, parkedID uuid.UUID) (ReconcileOutcome, error) {
	var parked pmodel.ParkedEvent
	if err := db.WithContext(ctx).
		Where("parked_event_id = ?", parkedID).
		Where("parked_event_resolved_at IS NULL").
		Take(&parked).Error; err != nil {
		return ReconcileOutcome{}, err
	}

	var ev TxnEvent
	if err := json.Unmarshal(parked.ParkedEventPayload, &ev); err != nil {
		return ReconcileOutcome{}, err
	}

	out, err := HandleEvent(ctx, db, ev)
	if err != nil {
		return out, err
	}
	if out.Applied {
		now := time.Now()
		parked.ParkedEventResolvedAt = &now
		if err := db.WithContext(ctx).Save(&parked).Error; err != nil {
			return out, err
		}
	}
	return out, nil
}

/* =========================================================
   GORM STORE — implementasi produksi, satu transaksi per event
========================================================= */

type gormReconcilerStore struct {
	tx *gorm.DB
}

func (s *gormReconcilerStore) ContributionRow(transactionID string) (*pmodel.TransactionContribution, error) {
	var contrib pmodel.TransactionContribution
	err := s.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contribution_transaction_id = ?", transactionID).
		Take(&contrib).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contrib, nil
}

func (s *gormReconcilerStore) CreateContributionRow(c *pmodel.TransactionContribution) error {
	return s.tx.Create(c).Error
}

func (s *gormReconcilerStore) SaveContributionRow(c *pmodel.TransactionContribution) error {
	return s.tx.Save(c).Error
}

func (s *gormReconcilerStore) ContributionRowsForEntry(entryID uuid.UUID) ([]pmodel.TransactionContribution, error) {
	var contribs []pmodel.TransactionContribution
	err := s.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contribution_ledger_entry_id = ?", entryID).
		Find(&contribs).Error
	return contribs, err
}

func (s *gormReconcilerStore) LiveTransaction(transactionID string) (*pmodel.PaymentTransaction, error) {
	var live pmodel.PaymentTransaction
	err := s.tx.
		Where("transaction_id = ?", transactionID).
		Take(&live).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &live, nil
}

func (s *gormReconcilerStore) EntryByID(entryID uuid.UUID) (*lmodel.LedgerEntry, error) {
	var entry lmodel.LedgerEntry
	if err := s.tx.Where("ledger_entry_id = ?", entryID).Take(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *gormReconcilerStore) ApplyDelta(entryID uuid.UUID, deltaPaise int64, direction lmodel.LedgerEventDirection, transactionID *string) (*lmodel.LedgerEntry, error) {
	return ledgerservice.ApplyPaymentTx(s.tx, entryID, deltaPaise, direction, transactionID)
}

// ResolveTarget: ref quotation eksplisit menang; tanpa ref jatuh ke
// entry terbuka tertua milik contact (heuristik terdokumentasi).
// Gagal resolve → event diparkir (bukan error, bukan drop).
func (s *gormReconcilerStore) ResolveTarget(ev TxnEvent) (uuid.UUID, *pmodel.ParkedEvent, error) {
	t := ev.Transaction

	if t.TransactionQuotationRef != nil && *t.TransactionQuotationRef != "" {
		var entry lmodel.LedgerEntry
		err := s.tx.
			Where("ledger_entry_quotation_number = ?", *t.TransactionQuotationRef).
			Where("ledger_entry_status <> ?", lmodel.LedgerStatusVoided).
			Take(&entry).Error
		if err == nil {
			return entry.LedgerEntryID, nil, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, err
		}
		parked, perr := s.Park(ev, pmodel.ParkedNoOpenLedgerEntry)
		return uuid.Nil, parked, perr
	}

	contactID := uuid.Nil
	if t.TransactionContactID != nil {
		contactID = *t.TransactionContactID
	} else {
		resolved, err := contactservice.Resolve(s.tx.Statement.Context, s.tx, t.TransactionCustomerName, t.TransactionCustomerEmail)
		if err != nil {
			if errors.Is(err, contactservice.ErrContactNotFound) {
				parked, perr := s.Park(ev, pmodel.ParkedUnresolvedPayer)
				return uuid.Nil, parked, perr
			}
			return uuid.Nil, nil, err
		}
		contactID = resolved
	}

	entry, err := ledgerservice.OldestOpenForContact(s.tx, contactID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrEntryNotFound) {
			parked, perr := s.Park(ev, pmodel.ParkedNoOpenLedgerEntry)
			return uuid.Nil, parked, perr
		}
		return uuid.Nil, nil, err
	}
	return entry.LedgerEntryID, nil, nil
}

func (s *gormReconcilerStore) Park(ev TxnEvent, reason pmodel.ParkedReason) (*pmodel.ParkedEvent, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	parked := &pmodel.ParkedEvent{
		ParkedEventTransactionID: ev.Transaction.TransactionID,
		ParkedEventReason:        reason,
		ParkedEventPayload:       datatypes.JSON(payload),
	}
	if err := s.tx.Create(parked).Error; err != nil {
		return nil, err
	}
	log.Printf("[RECON] parked txn=%s reason=%s", ev.Transaction.TransactionID, reason)
	return parked, nil
}
