// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	pmodel "lyceum_backend/internals/features/finance/payments/model"
	"lyceum_backend/internals/features/finance/payments/service"
)

/* =========================================================
   TRANSACTION EVENT (ingest dari sistem akunting)
========================================================= */

type TransactionDTO struct {
	TransactionID string `json:"transaction_id" validate:"required"`

	ContactID     *uuid.UUID `json:"contact_id,omitempty"`
	CustomerName  *string    `json:"customer_name,omitempty"`
	CustomerEmail *string    `json:"customer_email,omitempty"`
	QuotationRef  *string    `json:"quotation_ref,omitempty"`

	AmountPaise int64  `json:"amount_paise" validate:"gte=0"`
	Kind        string `json:"kind" validate:"required,oneof=Income Invoice Expense Purchase Transfer Bill"`
	Status      string `json:"status" validate:"required,oneof=Paid Pending Overdue"`
}

type TransactionEventDTO struct {
	Type        string         `json:"type" validate:"required,oneof=created updated voided"`
	Transaction TransactionDTO `json:"transaction" validate:"required"`
}

func (d *TransactionEventDTO) ToModel() pmodel.PaymentTransaction {
	t := d.Transaction
	return pmodel.PaymentTransaction{
		TransactionID:            t.TransactionID,
		TransactionContactID:     t.ContactID,
		TransactionCustomerName:  t.CustomerName,
		TransactionCustomerEmail: t.CustomerEmail,
		TransactionQuotationRef:  t.QuotationRef,
		TransactionAmountPaise:   t.AmountPaise,
		TransactionKind:          pmodel.TransactionKind(t.Kind),
		TransactionStatus:        pmodel.TransactionStatus(t.Status),
	}
}

/* =========================================================
   CHECKOUT (Midtrans Snap)
========================================================= */

type CheckoutRequestDTO struct {
	LedgerEntryID uuid.UUID `json:"ledger_entry_id" validate:"required"`

	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type CheckoutResponseDTO struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount_paise"`
}

/* =========================================================
   RECONCILE RESULT & PARKED QUEUE
========================================================= */

type ReconcileResultDTO struct {
	Applied      bool       `json:"applied"`
	ParkedID     *uuid.UUID `json:"parked_id,omitempty"`
	ParkedReason *string    `json:"parked_reason,omitempty"`

	LedgerEntryID   *uuid.UUID `json:"ledger_entry_id,omitempty"`
	PaidPaise       *int64     `json:"paid_paise,omitempty"`
	RemainingPaise  *int64     `json:"remaining_paise,omitempty"`
	LedgerStatusNow *string    `json:"ledger_status,omitempty"`
}

func ToReconcileResult(out service.ReconcileOutcome) ReconcileResultDTO {
	res := ReconcileResultDTO{Applied: out.Applied}
	if out.Parked != nil {
		res.ParkedID = &out.Parked.ParkedEventID
		reason := string(out.Parked.ParkedEventReason)
		res.ParkedReason = &reason
	}
	if out.Entry != nil {
		res.LedgerEntryID = &out.Entry.LedgerEntryID
		paid := out.Entry.LedgerEntryPaidPaise
		remaining := out.Entry.RemainingPaise()
		status := string(out.Entry.LedgerEntryStatus)
		res.PaidPaise = &paid
		res.RemainingPaise = &remaining
		res.LedgerStatusNow = &status
	}
	return res
}

type ParkedEventResponse struct {
	ParkedEventID            uuid.UUID  `json:"parked_event_id"`
	ParkedEventTransactionID string     `json:"parked_event_transaction_id"`
	ParkedEventReason        string     `json:"parked_event_reason"`
	ParkedEventPayload       any        `json:"parked_event_payload"`
	ParkedEventResolvedAt    *time.Time `json:"parked_event_resolved_at,omitempty"`
	ParkedEventCreatedAt     time.Time  `json:"parked_event_created_at"`
}

func ToParkedEventResponse(m *pmodel.ParkedEvent) ParkedEventResponse {
	return ParkedEventResponse{
		ParkedEventID:            m.ParkedEventID,
		ParkedEventTransactionID: m.ParkedEventTransactionID,
		ParkedEventReason:        string(m.ParkedEventReason),
		ParkedEventPayload:       m.ParkedEventPayload,
		ParkedEventResolvedAt:    m.ParkedEventResolvedAt,
		ParkedEventCreatedAt:     m.ParkedEventCreatedAt,
	}
}
