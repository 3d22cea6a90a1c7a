// file: internals/features/finance/ledger/model/ledger_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	qmodel "lyceum_backend/internals/features/finance/quotations/model"
)

/* ==============================
   ENUM — status AR entry
============================== */

type LedgerStatus string

const (
	LedgerStatusOutstanding LedgerStatus = "Outstanding"
	LedgerStatusPartial     LedgerStatus = "Partial"
	LedgerStatusPaid        LedgerStatus = "Paid"
	LedgerStatusVoided      LedgerStatus = "Voided" // quotation Rejected setelah entry sempat ada
)

/* ==============================================
   MODEL — ledger_entries (AR per quotation Agreed)

   paid adalah satu-satunya sumber kebenaran; status,
   remaining, dan overpaid selalu DITURUNKAN darinya,
   tidak pernah disimpan terpisah.
============================================== */

type LedgerEntry struct {
	LedgerEntryID uuid.UUID `gorm:"column:ledger_entry_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"ledger_entry_id"`

	LedgerEntryContactID       uuid.UUID `gorm:"column:ledger_entry_contact_id;type:uuid;not null;index" json:"ledger_entry_contact_id"`
	LedgerEntryQuotationID     uuid.UUID `gorm:"column:ledger_entry_quotation_id;type:uuid;not null;uniqueIndex" json:"ledger_entry_quotation_id"`
	LedgerEntryQuotationNumber string    `gorm:"column:ledger_entry_quotation_number;type:varchar(20);not null;index" json:"ledger_entry_quotation_number"`

	// Snapshot line item beku saat Agreed — dipakai UnlockEvaluator.
	LedgerEntryLineItems datatypes.JSONType[[]qmodel.LineItem] `gorm:"column:ledger_entry_line_items;type:jsonb;not null" json:"ledger_entry_line_items"`

	LedgerEntryTotalPaise int64 `gorm:"column:ledger_entry_total_paise;type:bigint;not null;check:ledger_entry_total_paise>=0" json:"ledger_entry_total_paise"`
	LedgerEntryPaidPaise  int64 `gorm:"column:ledger_entry_paid_paise;type:bigint;not null;default:0;check:ledger_entry_paid_paise>=0" json:"ledger_entry_paid_paise"`

	LedgerEntryStatus LedgerStatus `gorm:"column:ledger_entry_status;type:varchar(20);not null;default:'Outstanding';index" json:"ledger_entry_status"`

	// Audit
	LedgerEntryAgreedAt  time.Time      `gorm:"column:ledger_entry_agreed_at;type:timestamptz;not null;default:now();index" json:"ledger_entry_agreed_at"`
	LedgerEntryUpdatedAt time.Time      `gorm:"column:ledger_entry_updated_at;type:timestamptz;not null;default:now()" json:"ledger_entry_updated_at"`
	LedgerEntryDeletedAt gorm.DeletedAt `gorm:"column:ledger_entry_deleted_at;type:timestamptz;index" json:"-"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }

func (m *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.LedgerEntryAgreedAt.IsZero() {
		m.LedgerEntryAgreedAt = now
	}
	m.LedgerEntryUpdatedAt = now
	if m.LedgerEntryStatus == "" {
		m.LedgerEntryStatus = LedgerStatusOutstanding
	}
	return nil
}

func (m *LedgerEntry) BeforeUpdate(tx *gorm.DB) error {
	m.LedgerEntryUpdatedAt = time.Now()
	return nil
}

/* ==============================
   Derivasi (lihat derive.go)
============================== */

func (m *LedgerEntry) RemainingPaise() int64 { return RemainingPaise(m.LedgerEntryTotalPaise, m.LedgerEntryPaidPaise) }
func (m *LedgerEntry) OverpaidPaise() int64  { return OverpaidPaise(m.LedgerEntryTotalPaise, m.LedgerEntryPaidPaise) }

func (m *LedgerEntry) IsOpen() bool {
	return m.LedgerEntryStatus == LedgerStatusOutstanding || m.LedgerEntryStatus == LedgerStatusPartial
}
