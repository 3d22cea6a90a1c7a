// file: internals/features/finance/ledger/dto/ledger_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lyceum_backend/internals/constants"
	model "lyceum_backend/internals/features/finance/ledger/model"
)

////////////////////////////////////////////////////////////////////////////////
// LEDGER ENTRY — DTO
////////////////////////////////////////////////////////////////////////////////

type LedgerEntryResponse struct {
	LedgerEntryID              uuid.UUID `json:"ledger_entry_id"`
	LedgerEntryContactID       uuid.UUID `json:"ledger_entry_contact_id"`
	LedgerEntryQuotationID     uuid.UUID `json:"ledger_entry_quotation_id"`
	LedgerEntryQuotationNumber string    `json:"ledger_entry_quotation_number"`

	LedgerEntryTotalPaise     int64  `json:"ledger_entry_total_paise"`
	LedgerEntryPaidPaise      int64  `json:"ledger_entry_paid_paise"`
	LedgerEntryRemainingPaise int64  `json:"ledger_entry_remaining_paise"`
	LedgerEntryOverpaidPaise  int64  `json:"ledger_entry_overpaid_paise"`
	LedgerEntryStatus         string `json:"ledger_entry_status"`

	LedgerEntryAgreedAt  time.Time `json:"ledger_entry_agreed_at"`
	LedgerEntryUpdatedAt time.Time `json:"ledger_entry_updated_at"`
}

func ToLedgerEntryResponse(m model.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerEntryID:              m.LedgerEntryID,
		LedgerEntryContactID:       m.LedgerEntryContactID,
		LedgerEntryQuotationID:     m.LedgerEntryQuotationID,
		LedgerEntryQuotationNumber: m.LedgerEntryQuotationNumber,
		LedgerEntryTotalPaise:      m.LedgerEntryTotalPaise,
		LedgerEntryPaidPaise:       m.LedgerEntryPaidPaise,
		LedgerEntryRemainingPaise:  m.RemainingPaise(),
		LedgerEntryOverpaidPaise:   m.OverpaidPaise(),
		LedgerEntryStatus:          string(m.LedgerEntryStatus),
		LedgerEntryAgreedAt:        m.LedgerEntryAgreedAt,
		LedgerEntryUpdatedAt:       m.LedgerEntryUpdatedAt,
	}
}

func ToLedgerEntryResponses(ms []model.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToLedgerEntryResponse(m))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// UNLOCK STATE — DTO (derived, tidak dipersist)
////////////////////////////////////////////////////////////////////////////////

type UnlockStateResponse struct {
	QuotationID        uuid.UUID                    `json:"quotation_id"`
	PaidPaise          int64                        `json:"paid_paise"`
	UnlockedCategories []constants.DocumentCategory `json:"unlocked_categories"`
	SatisfiedStageIDs  []string                     `json:"satisfied_stage_ids"`
}

////////////////////////////////////////////////////////////////////////////////
// LEDGER EVENT — DTO (audit trail)
////////////////////////////////////////////////////////////////////////////////

type LedgerEventResponse struct {
	LedgerEventID                 uuid.UUID `json:"ledger_event_id"`
	LedgerEventTransactionID      *string   `json:"ledger_event_transaction_id,omitempty"`
	LedgerEventDirection          string    `json:"ledger_event_direction"`
	LedgerEventDeltaPaise         int64     `json:"ledger_event_delta_paise"`
	LedgerEventResultingPaidPaise int64     `json:"ledger_event_resulting_paid_paise"`
	LedgerEventStagesSatisfied    []string  `json:"ledger_event_stages_satisfied,omitempty"`
	LedgerEventCreatedAt          time.Time `json:"ledger_event_created_at"`
}

func ToLedgerEventResponse(m model.LedgerEvent) LedgerEventResponse {
	return LedgerEventResponse{
		LedgerEventID:                 m.LedgerEventID,
		LedgerEventTransactionID:      m.LedgerEventTransactionID,
		LedgerEventDirection:          string(m.LedgerEventDirection),
		LedgerEventDeltaPaise:         m.LedgerEventDeltaPaise,
		LedgerEventResultingPaidPaise: m.LedgerEventResultingPaidPaise,
		LedgerEventStagesSatisfied:    []string(m.LedgerEventStagesSatisfied),
		LedgerEventCreatedAt:          m.LedgerEventCreatedAt,
	}
}
