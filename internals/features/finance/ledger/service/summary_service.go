// file: internals/features/finance/ledger/service/summary_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "lyceum_backend/internals/features/finance/ledger/model"
)

/* =========================================================
   REPORTING — agregasi read-only untuk dashboard. Entry Voided
   tidak ikut dihitung. Boleh dibaca dari snapshot yang sedang
   direkonsiliasi (eventual consistency).
========================================================= */

type Summary struct {
	TotalPaise       int64 `json:"total_paise"`       // Σ total (non-voided)
	OutstandingPaise int64 `json:"outstanding_paise"` // Σ remaining untuk Outstanding/Partial
	CollectedPaise   int64 `json:"collected_paise"`   // Σ paid
	OverpaidPaise    int64 `json:"overpaid_paise"`    // Σ kelebihan bayar
	EntryCount       int64 `json:"entry_count"`
}

// SummaryOf: agregasi murni — dipakai query path dan test.
func SummaryOf(entries []model.LedgerEntry) Summary {
	var s Summary
	for _, e := range entries {
		if e.LedgerEntryStatus == model.LedgerStatusVoided {
			continue
		}
		s.EntryCount++
		s.TotalPaise += e.LedgerEntryTotalPaise
		s.CollectedPaise += e.LedgerEntryPaidPaise
		s.OverpaidPaise += e.OverpaidPaise()
		if e.IsOpen() {
			s.OutstandingPaise += e.RemainingPaise()
		}
	}
	return s
}

// SummaryForContacts menghitung ringkasan AR untuk sekumpulan contact;
// kosong = seluruh populasi.
func SummaryForContacts(ctx context.Context, db *gorm.DB, contactIDs []uuid.UUID) (Summary, error) {
	q := db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("ledger_entry_status <> ?", model.LedgerStatusVoided)
	if len(contactIDs) > 0 {
		q = q.Where("ledger_entry_contact_id IN ?", contactIDs)
	}

	var entries []model.LedgerEntry
	if err := q.Find(&entries).Error; err != nil {
		return Summary{}, err
	}
	return SummaryOf(entries), nil
}
