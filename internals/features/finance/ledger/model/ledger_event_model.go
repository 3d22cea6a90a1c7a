// file: internals/features/finance/ledger/model/ledger_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — arah mutasi
============================== */

type LedgerEventDirection string

const (
	LedgerEventCredit  LedgerEventDirection = "credit"
	LedgerEventReverse LedgerEventDirection = "reverse"
	LedgerEventVoid    LedgerEventDirection = "void"
	LedgerEventRebuild LedgerEventDirection = "rebuild" // full recompute pass
)

/* ==============================================
   MODEL — ledger_events (audit trail per mutasi)

   Setiap perubahan paid tercatat di sini; reversal selalu
   ter-audit, dan stage yang baru terpenuhi direkam by id.
============================================== */

type LedgerEvent struct {
	LedgerEventID uuid.UUID `gorm:"column:ledger_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"ledger_event_id"`

	LedgerEventEntryID       uuid.UUID            `gorm:"column:ledger_event_entry_id;type:uuid;not null;index" json:"ledger_event_entry_id"`
	LedgerEventTransactionID *string              `gorm:"column:ledger_event_transaction_id;type:text;index" json:"ledger_event_transaction_id,omitempty"`
	LedgerEventDirection     LedgerEventDirection `gorm:"column:ledger_event_direction;type:varchar(10);not null" json:"ledger_event_direction"`

	LedgerEventDeltaPaise         int64 `gorm:"column:ledger_event_delta_paise;type:bigint;not null" json:"ledger_event_delta_paise"`
	LedgerEventResultingPaidPaise int64 `gorm:"column:ledger_event_resulting_paid_paise;type:bigint;not null" json:"ledger_event_resulting_paid_paise"`

	// Stage id yang BARU terpenuhi oleh mutasi ini (bisa kosong).
	LedgerEventStagesSatisfied pq.StringArray `gorm:"column:ledger_event_stages_satisfied;type:text[]" json:"ledger_event_stages_satisfied,omitempty"`

	LedgerEventCreatedAt time.Time `gorm:"column:ledger_event_created_at;type:timestamptz;not null;default:now();index" json:"ledger_event_created_at"`
}

func (LedgerEvent) TableName() string { return "ledger_events" }

func (m *LedgerEvent) BeforeCreate(tx *gorm.DB) error {
	if m.LedgerEventCreatedAt.IsZero() {
		m.LedgerEventCreatedAt = time.Now()
	}
	return nil
}
