// file: internals/features/finance/ledger/service/ledger_store_service.go
package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "lyceum_backend/internals/features/finance/ledger/model"
	qmodel "lyceum_backend/internals/features/finance/quotations/model"
)

/* =========================================================
   LEDGER ENTRY STORE — aggregate per quotation Agreed.
   ApplyPayment adalah satu read-modify-write atomik dengan row
   lock; entry berbeda bebas paralel, tidak ada lock global.
========================================================= */

var (
	ErrDuplicateEntry = fiber.NewError(fiber.StatusConflict, "ledger entry untuk quotation ini sudah ada")
	ErrEntryNotFound  = fiber.NewError(fiber.StatusNotFound, "ledger entry tidak ditemukan")
	ErrEntryVoided    = fiber.NewError(fiber.StatusConflict, "ledger entry sudah voided")
)

// CreateEntry membuat AR entry saat quotation menjadi Agreed.
// Dipanggil di dalam transaksi milik caller (satu entry per quotation).
func CreateEntry(tx *gorm.DB, q *qmodel.Quotation) (*model.LedgerEntry, error) {
	var count int64
	if err := tx.Model(&model.LedgerEntry{}).
		Where("ledger_entry_quotation_id = ?", q.QuotationID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEntry
	}

	entry := &model.LedgerEntry{
		LedgerEntryContactID:       q.QuotationContactID,
		LedgerEntryQuotationID:     q.QuotationID,
		LedgerEntryQuotationNumber: q.QuotationNumber,
		LedgerEntryLineItems:       q.QuotationLineItems,
		LedgerEntryTotalPaise:      q.QuotationTotalPaise,
		LedgerEntryPaidPaise:       0,
		LedgerEntryStatus:          model.LedgerStatusOutstanding,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// VoidByQuotation menandai entry Voided saat quotation di-Reject
// setelah sempat punya entry. Tanpa entry = no-op.
func VoidByQuotation(tx *gorm.DB, quotationID uuid.UUID) error {
	var entry model.LedgerEntry
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("ledger_entry_quotation_id = ?", quotationID).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if entry.LedgerEntryStatus == model.LedgerStatusVoided {
		return nil
	}

	entry.LedgerEntryStatus = model.LedgerStatusVoided
	if err := tx.Save(&entry).Error; err != nil {
		return err
	}

	ev := &model.LedgerEvent{
		LedgerEventEntryID:            entry.LedgerEntryID,
		LedgerEventDirection:          model.LedgerEventVoid,
		LedgerEventDeltaPaise:         0,
		LedgerEventResultingPaidPaise: entry.LedgerEntryPaidPaise,
	}
	return tx.Create(ev).Error
}

// ApplyPaymentTx memutasi paid sebesar deltaPaise (signed) di dalam
// transaksi caller: lock row, clamp paid ≥ 0, derive ulang status,
// catat event audit (termasuk stage yang baru terpenuhi).
// Overpayment TIDAK di-clamp — remaining floor 0, kelebihan tampil
// lewat OverpaidPaise.
func ApplyPaymentTx(tx *gorm.DB, entryID uuid.UUID, deltaPaise int64, direction model.LedgerEventDirection, transactionID *string) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("ledger_entry_id = ?", entryID).
		Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.LedgerEntryStatus == model.LedgerStatusVoided {
		return nil, ErrEntryVoided
	}

	paidBefore := entry.LedgerEntryPaidPaise
	paidAfter := model.ClampPaid(paidBefore + deltaPaise)

	entry.LedgerEntryPaidPaise = paidAfter
	entry.LedgerEntryStatus = model.DeriveStatus(entry.LedgerEntryTotalPaise, paidAfter)
	if err := tx.Save(&entry).Error; err != nil {
		return nil, err
	}

	ev := &model.LedgerEvent{
		LedgerEventEntryID:            entry.LedgerEntryID,
		LedgerEventTransactionID:      transactionID,
		LedgerEventDirection:          direction,
		LedgerEventDeltaPaise:         paidAfter - paidBefore,
		LedgerEventResultingPaidPaise: paidAfter,
		LedgerEventStagesSatisfied:    pq.StringArray(NewlySatisfiedStageIDs(entry.LedgerEntryLineItems.Data(), paidBefore, paidAfter)),
	}
	if err := tx.Create(ev).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ApplyPayment adalah varian self-transaction dari ApplyPaymentTx.
func ApplyPayment(ctx context.Context, db *gorm.DB, entryID uuid.UUID, deltaPaise int64, direction model.LedgerEventDirection, transactionID *string) (*model.LedgerEntry, error) {
	var out *model.LedgerEntry
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := ApplyPaymentTx(tx, entryID, deltaPaise, direction, transactionID)
		if err != nil {
			return err
		}
		out = entry
		return nil
	})
	return out, err
}

/* ======================
   READS
====================== */

func GetByQuotation(ctx context.Context, db *gorm.DB, quotationID uuid.UUID) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	if err := db.WithContext(ctx).
		Where("ledger_entry_quotation_id = ?", quotationID).
		Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func GetByID(ctx context.Context, db *gorm.DB, entryID uuid.UUID) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	if err := db.WithContext(ctx).
		Where("ledger_entry_id = ?", entryID).
		Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func ListForContact(ctx context.Context, db *gorm.DB, contactID uuid.UUID) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	if err := db.WithContext(ctx).
		Where("ledger_entry_contact_id = ?", contactID).
		Order("ledger_entry_agreed_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// OldestOpenForContact: fallback reconciler saat transaksi tidak punya
// referensi quotation eksplisit (heuristik — lihat DESIGN.md).
func OldestOpenForContact(tx *gorm.DB, contactID uuid.UUID) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := tx.
		Where("ledger_entry_contact_id = ?", contactID).
		Where("ledger_entry_status IN ?", []model.LedgerStatus{model.LedgerStatusOutstanding, model.LedgerStatusPartial}).
		Order("ledger_entry_agreed_at ASC").
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func ListEvents(ctx context.Context, db *gorm.DB, entryID uuid.UUID) ([]model.LedgerEvent, error) {
	var events []model.LedgerEvent
	if err := db.WithContext(ctx).
		Where("ledger_event_entry_id = ?", entryID).
		Order("ledger_event_created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
