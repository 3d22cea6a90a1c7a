// file: internals/features/finance/payments/model/parked_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — alasan parkir
============================== */

type ParkedReason string

const (
	ParkedUnresolvedPayer   ParkedReason = "unresolved_payer"
	ParkedNoOpenLedgerEntry ParkedReason = "no_open_ledger_entry"
)

/* ==============================================
   MODEL — parked_events

   Event rekonsiliasi yang gagal dipetakan TIDAK pernah di-drop:
   diparkir ke antrian operator untuk di-retry/resolve manual.
============================================== */

type ParkedEvent struct {
	ParkedEventID uuid.UUID `gorm:"column:parked_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"parked_event_id"`

	ParkedEventTransactionID string       `gorm:"column:parked_event_transaction_id;type:text;not null;index" json:"parked_event_transaction_id"`
	ParkedEventReason        ParkedReason `gorm:"column:parked_event_reason;type:varchar(30);not null;index" json:"parked_event_reason"`

	// Snapshot event aslinya, untuk replay.
	ParkedEventPayload datatypes.JSON `gorm:"column:parked_event_payload;type:jsonb;not null" json:"parked_event_payload"`

	ParkedEventResolvedAt *time.Time `gorm:"column:parked_event_resolved_at;type:timestamptz;index" json:"parked_event_resolved_at,omitempty"`
	ParkedEventCreatedAt  time.Time  `gorm:"column:parked_event_created_at;type:timestamptz;not null;default:now();index" json:"parked_event_created_at"`
}

func (ParkedEvent) TableName() string { return "parked_events" }

func (m *ParkedEvent) BeforeCreate(tx *gorm.DB) error {
	if m.ParkedEventCreatedAt.IsZero() {
		m.ParkedEventCreatedAt = time.Now()
	}
	return nil
}
