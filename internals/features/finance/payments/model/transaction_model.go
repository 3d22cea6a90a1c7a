// file: internals/features/finance/payments/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ==============================
   ENUM mirror — accounting_transactions adalah tabel milik
   sistem akunting induk; reconciler hanya MEMBACA bentuk ini.
============================== */

type TransactionKind string
type TransactionStatus string

const (
	TransactionKindIncome   TransactionKind = "Income"
	TransactionKindInvoice  TransactionKind = "Invoice"
	TransactionKindExpense  TransactionKind = "Expense"
	TransactionKindPurchase TransactionKind = "Purchase"
	TransactionKindTransfer TransactionKind = "Transfer"
	TransactionKindBill     TransactionKind = "Bill"
)

const (
	TransactionStatusPaid    TransactionStatus = "Paid"
	TransactionStatusPending TransactionStatus = "Pending"
	TransactionStatusOverdue TransactionStatus = "Overdue"
)

/* ==============================================
   MODEL — accounting_transactions (read-only di sini)

   payer key rapuh: contact_id kadang kosong dan hanya ada
   customer_name/email — resolusi by-name diisolasi di
   contacts.Resolve, kegagalan di-park, tidak ditebak.
============================================== */

type PaymentTransaction struct {
	TransactionID string `gorm:"column:transaction_id;type:text;primaryKey" json:"transaction_id"`

	TransactionContactID     *uuid.UUID `gorm:"column:transaction_contact_id;type:uuid;index" json:"transaction_contact_id,omitempty"`
	TransactionCustomerName  *string    `gorm:"column:transaction_customer_name;type:text" json:"transaction_customer_name,omitempty"`
	TransactionCustomerEmail *string    `gorm:"column:transaction_customer_email;type:text" json:"transaction_customer_email,omitempty"`

	// Referensi quotation eksplisit (quotation_number), boleh kosong.
	TransactionQuotationRef *string `gorm:"column:transaction_quotation_ref;type:varchar(20);index" json:"transaction_quotation_ref,omitempty"`

	TransactionAmountPaise int64             `gorm:"column:transaction_amount_paise;type:bigint;not null;check:transaction_amount_paise>=0" json:"transaction_amount_paise"`
	TransactionKind        TransactionKind   `gorm:"column:transaction_kind;type:varchar(20);not null" json:"transaction_kind"`
	TransactionStatus      TransactionStatus `gorm:"column:transaction_status;type:varchar(20);not null" json:"transaction_status"`

	TransactionCreatedAt time.Time `gorm:"column:transaction_created_at;type:timestamptz;not null;default:now()" json:"transaction_created_at"`
	TransactionUpdatedAt time.Time `gorm:"column:transaction_updated_at;type:timestamptz;not null;default:now()" json:"transaction_updated_at"`
}

func (PaymentTransaction) TableName() string { return "accounting_transactions" }
